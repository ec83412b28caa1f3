package aht20

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// ErrUnexpectedLength is returned by transports when the device delivers a
// response of a different size than requested.
var ErrUnexpectedLength = fmt.Errorf("unexpected response length")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// AddressableTransferer performs a write followed by a read addressed to the
// same device within a single bus transaction.
type AddressableTransferer interface {
	TransferToAddr(ctx context.Context, address byte, w, r []byte) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
	AddressableTransferer
}

// BusOpener opens the named I2C bus. Openers backed by USB adapters may
// ignore the name.
type BusOpener func(bus string) (I2CBus, error)
