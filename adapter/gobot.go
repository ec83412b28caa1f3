package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/gophertribe/aht20"

	"gobot.io/x/gobot/v2/drivers/i2c"
)

var _ aht20.I2CBus = &GobotBus{}

// GobotBus exposes a gobot platform adaptor (nanopi, raspi, ...) as an
// aht20.I2CBus. Gobot binds a connection to a single device address, so
// connections are opened lazily per address and cached.
type GobotBus struct {
	mx        sync.Mutex
	connector i2c.Connector
	busNr     int
	conns     map[byte]i2c.Connection
}

// NewGobotBus wraps the connector. Pass a negative bus number to use the
// platform default.
func NewGobotBus(connector i2c.Connector, busNr int) *GobotBus {
	if busNr < 0 {
		busNr = connector.DefaultI2cBus()
	}
	return &GobotBus{
		connector: connector,
		busNr:     busNr,
		conns:     make(map[byte]i2c.Connection),
	}
}

func (b *GobotBus) connection(address byte) (i2c.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.connector.GetI2cConnection(int(address), b.busNr)
	if err != nil {
		return nil, fmt.Errorf("could not connect to i2c device %x on bus %d: %w", address, b.busNr, err)
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.writeToAddr(address, buffer)
}

func (b *GobotBus) writeToAddr(address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c device %x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write of %d bytes: %w", n, aht20.ErrUnexpectedLength)
	}
	return nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.readFromAddr(address, buffer)
}

func (b *GobotBus) readFromAddr(address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c device %x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read of %d bytes: %w", n, aht20.ErrUnexpectedLength)
	}
	return nil
}

// TransferToAddr performs the write and the read back-to-back while holding
// the bus lock.
func (b *GobotBus) TransferToAddr(ctx context.Context, address byte, w, r []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	if len(w) > 0 {
		err := b.writeToAddr(address, w)
		if err != nil {
			return err
		}
	}
	if len(r) == 0 {
		return nil
	}
	return b.readFromAddr(address, r)
}

func (b *GobotBus) Release(ctx context.Context) error {
	return nil
}

func (b *GobotBus) Close() error {
	b.mx.Lock()
	defer b.mx.Unlock()
	var firstErr error
	for addr, conn := range b.conns {
		err := conn.Close()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not close connection to %x: %w", addr, err)
		}
		delete(b.conns, addr)
	}
	return firstErr
}
