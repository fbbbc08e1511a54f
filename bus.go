package scale

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// AddressableReader reads bytes from a device at a 7-bit bus address.
type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

// AddressableWriter writes bytes to a device at a 7-bit bus address.
// Release asks the transport to abort a stuck transaction and free the bus.
type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the byte-level transport consumed by device drivers. Implementations
// may block or suspend cooperatively; drivers issue strictly sequential
// transactions either way.
type I2CBus interface {
	AddressableReader
	AddressableWriter
}
