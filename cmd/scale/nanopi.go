package main

import (
	"context"
	"fmt"
	"sync"

	"gobot.io/x/gobot/v2/drivers/i2c"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
)

// nanopiBus adapts the gobot NanoPi I2C stack to scale.I2CBus. Connections
// are per target address and cached for the life of the bus.
type nanopiBus struct {
	mx      sync.Mutex
	adaptor *nanopi.Adaptor
	busNr   int
	conns   map[byte]i2c.Connection
}

func newNanopiBus(busNr int) (*nanopiBus, error) {
	npi := nanopi.NewNeoAdaptor()
	if err := npi.I2cBusAdaptor.Connect(); err != nil {
		return nil, fmt.Errorf("adaptor connect error: %w", err)
	}
	return &nanopiBus{
		adaptor: npi,
		busNr:   busNr,
		conns:   make(map[byte]i2c.Connection),
	}, nil
}

func (b *nanopiBus) connection(address byte) (i2c.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.adaptor.GetI2cConnection(int(address), b.busNr)
	if err != nil {
		return nil, fmt.Errorf("could not get i2c connection to %#x: %w", address, err)
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *nanopiBus) WriteToAddr(_ context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c address %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to i2c address %#x: %d of %d", address, n, len(buffer))
	}
	return nil
}

func (b *nanopiBus) ReadFromAddr(_ context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c address %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from i2c address %#x: %d of %d", address, n, len(buffer))
	}
	return nil
}

func (b *nanopiBus) Release(context.Context) error { return nil }

func (b *nanopiBus) Close() error {
	b.mx.Lock()
	defer b.mx.Unlock()
	for _, conn := range b.conns {
		_ = conn.Close()
	}
	return b.adaptor.I2cBusAdaptor.Finalize()
}
