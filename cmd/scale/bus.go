package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/scale"
	"github.com/mklimuk/scale/adapter"
	"github.com/mklimuk/scale/cmd/scale/console"
	"github.com/mklimuk/scale/i2c"
	"github.com/mklimuk/scale/nau7802"
)

var busFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Usage:   "bus adapter: mcp2221, generic or nanopi",
		Value:   "mcp2221",
	},
	&cli.StringFlag{
		Name:    "device",
		Aliases: []string{"d"},
		Usage:   "i2c device path for the generic adapter",
		Value:   "/dev/i2c-1",
	},
	&cli.IntFlag{
		Name:  "bus",
		Usage: "i2c bus number for the nanopi adapter",
		Value: 0,
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "scale configuration file",
		Value:   "scale.yaml",
	},
	&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
}

// openBus builds the transport selected on the command line. The returned
// closer is a no-op where the adapter needs none.
func openBus(ctx context.Context, c *cli.Context) (scale.I2CBus, func(), error) {
	switch c.String("adapter") {
	case "mcp2221":
		ad := adapter.NewMCP2221()
		if err := ad.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return ad, func() {}, nil
	case "generic":
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				console.Errorf("error closing bus: %s", console.Red(err))
			}
		}, nil
	case "nanopi":
		bus, err := newNanopiBus(c.Int("bus"))
		if err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				console.Errorf("error closing bus: %s", console.Red(err))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
}

// bringUp opens the transport and runs the device bring-up sequence with the
// configured analog settings.
func bringUp(ctx context.Context, c *cli.Context, cfg *config) (*nau7802.Device, func(), error) {
	gain, err := cfg.gain()
	if err != nil {
		return nil, nil, err
	}
	ldo, err := cfg.ldo()
	if err != nil {
		return nil, nil, err
	}
	rate, err := cfg.sampleRate()
	if err != nil {
		return nil, nil, err
	}
	bus, closer, err := openBus(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	dev, err := nau7802.NewWithSettings(ctx, bus, ldo, gain, rate, scale.TimerDelay{})
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("device bring-up failed: %w", err)
	}
	return dev, closer, nil
}
