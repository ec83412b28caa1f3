package aht20

import (
	"context"
	"fmt"
	"time"
)

// Command set (Aosong AHT20 datasheet).
const (
	cmdStatus     byte = 0x71
	cmdInitialize byte = 0xBE
	cmdMeasure    byte = 0xAC
	cmdSoftReset  byte = 0xBA
)

// Hardware-mandated minimum waits. These are lower bounds, not tunables.
const (
	powerOnDelay     = 40 * time.Millisecond
	softResetDelay   = 20 * time.Millisecond
	measurementDelay = 75 * time.Millisecond
)

var (
	argsInitialize = []byte{cmdInitialize, 0x08, 0x00}
	argsMeasure    = []byte{cmdMeasure, 0x33, 0x00}
)

// Hygrometer is the read surface of the driver. Downstream code should
// depend on it rather than on *Sensor so it can be substituted in tests.
type Hygrometer interface {
	Measure(ctx context.Context) (Measurement, error)
}

// Sensor represents a single AHT20 on an I2C bus. It is immutable after
// Start and carries no internal locking: the bus/device pair is an exclusive
// resource, so a handle must not be shared across goroutines without
// external synchronization.
//
// Typical usage:
//
//	s, err := aht20.Start(ctx, aht20.Config{}, i2c.Open)
//	m, err := s.Measure(ctx)
type Sensor struct {
	transport I2CBus
	bus       string
	addr      byte
}

var _ Hygrometer = &Sensor{}

// Start opens the transport described by cfg (defaults: bus "1", address
// 0x38), waits out the power-on stabilization time and brings the sensor
// into a measurable state with a soft reset followed by initialization.
// The first failing step aborts the sequence; no handle is returned then.
func Start(ctx context.Context, cfg Config, open BusOpener) (*Sensor, error) {
	cfg = cfg.withDefaults()
	bus, err := open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("aht20: bus open failed: %w", err)
	}
	sensor := &Sensor{transport: bus, bus: cfg.Bus, addr: cfg.Address}
	// 40ms after power-on before the sensor accepts commands
	time.Sleep(powerOnDelay)
	err = sensor.Reset(ctx)
	if err != nil {
		return nil, err
	}
	err = sensor.initialize(ctx)
	if err != nil {
		return nil, err
	}
	return sensor, nil
}

// Bus returns the name of the bus the sensor was opened on.
func (s *Sensor) Bus() string { return s.bus }

// Address returns the 7-bit device address.
func (s *Sensor) Address() byte { return s.addr }

// Reset performs a soft reset and blocks for the 20ms recovery time. No
// command may be issued to the sensor before Reset returns.
func (s *Sensor) Reset(ctx context.Context) error {
	err := s.transport.WriteToAddr(ctx, s.addr, []byte{cmdSoftReset})
	if err != nil {
		return fmt.Errorf("aht20: soft reset failed: %w", err)
	}
	time.Sleep(softResetDelay)
	return nil
}

// initialize loads the factory calibration. It must follow a reset and
// precede the first measurement, which Start guarantees.
func (s *Sensor) initialize(ctx context.Context) error {
	err := s.transport.WriteToAddr(ctx, s.addr, argsInitialize)
	if err != nil {
		return fmt.Errorf("aht20: initialization failed: %w", err)
	}
	return nil
}

// ReadData triggers a measurement, waits out the 75ms conversion time and
// reads the raw 7-byte response. There are no retries; the first transport
// failure is returned as-is.
func (s *Sensor) ReadData(ctx context.Context) (RawReading, error) {
	var raw RawReading
	err := s.transport.WriteToAddr(ctx, s.addr, argsMeasure)
	if err != nil {
		return raw, fmt.Errorf("aht20: measurement trigger failed: %w", err)
	}
	time.Sleep(measurementDelay)
	err = s.transport.ReadFromAddr(ctx, s.addr, raw[:])
	if err != nil {
		return raw, fmt.Errorf("aht20: measurement read failed: %w", err)
	}
	return raw, nil
}

// ReadState returns the raw status byte. Bit meanings (busy, calibrated) are
// documented by the datasheet but deliberately not interpreted here.
func (s *Sensor) ReadState(ctx context.Context) (byte, error) {
	var state [1]byte
	err := s.transport.TransferToAddr(ctx, s.addr, []byte{cmdStatus}, state[:])
	if err != nil {
		return 0, fmt.Errorf("aht20: status read failed: %w", err)
	}
	return state[0], nil
}

// Measure reads and decodes a single measurement, stamped with the capture
// time.
func (s *Sensor) Measure(ctx context.Context) (Measurement, error) {
	raw, err := s.ReadData(ctx)
	if err != nil {
		return Measurement{}, err
	}
	m := Decode(raw)
	m.Timestamp = time.Now()
	return m, nil
}
