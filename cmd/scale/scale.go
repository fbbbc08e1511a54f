package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/scale/cmd/scale/console"
	"github.com/mklimuk/scale/weight"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "print one raw signed conversion",
	Flags:   busFlags,
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, closer, err := bringUp(ctx, c, cfg)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer closer()
		val, err := dev.Read(ctx)
		if err != nil {
			return console.Exit(1, "error reading conversion: %s", console.Red(err))
		}
		console.Printf("%s counts\n", console.White(val))
		return nil
	},
}

var weighCmd = cli.Command{
	Name:  "weigh",
	Usage: "print the averaged mass using the persisted calibration",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, closer, err := bringUp(ctx, c, cfg)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer closer()
		s := weight.New(dev, weight.WithSamples(cfg.Samples))
		s.Restore(cfg.ZeroOffset, cfg.CalibrationFactor)
		mass, err := s.Weigh(ctx)
		if err != nil {
			return console.Exit(1, "error weighing: %s", console.Red(err))
		}
		console.PInfof(console.PictoScale, "%s kg", console.White(mass))
		return nil
	},
}

var tareCmd = cli.Command{
	Name:  "tare",
	Usage: "capture the zero offset with the cell unloaded",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, closer, err := bringUp(ctx, c, cfg)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer closer()
		s := weight.New(dev, weight.WithSamples(cfg.Samples))
		s.Restore(cfg.ZeroOffset, cfg.CalibrationFactor)
		if err := s.Tare(ctx); err != nil {
			return console.Exit(1, "error taring: %s", console.Red(err))
		}
		cfg.ZeroOffset = s.ZeroOffset()
		if err := cfg.save(c.String("config")); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.PInfof(console.PictoCheck, "zero offset saved: %s", console.White(cfg.ZeroOffset))
		return nil
	},
}

var calibrateCmd = cli.Command{
	Name:  "calibrate",
	Usage: "interactive zero and known-mass calibration",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, closer, err := bringUp(ctx, c, cfg)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer closer()
		s := weight.New(dev, weight.WithSamples(cfg.Samples))

		if err := console.Pause("remove all weight from the scale"); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := s.Tare(ctx); err != nil {
			return console.Exit(1, "error taring: %s", console.Red(err))
		}
		mass, err := console.PromptFloat("reference mass in kg")
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := console.Pause("place the reference mass on the scale"); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if err := s.CalibrateTo(ctx, mass); err != nil {
			return console.Exit(1, "error calibrating: %s", console.Red(err))
		}

		cfg.ZeroOffset = s.ZeroOffset()
		cfg.CalibrationFactor = s.CalibrationFactor()
		if err := cfg.save(c.String("config")); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.PInfof(console.PictoCheck, "calibration saved: offset %s, %s counts/kg",
			console.White(cfg.ZeroOffset), console.White(cfg.CalibrationFactor))
		return nil
	},
}

var infoCmd = cli.Command{
	Name:  "info",
	Usage: "print chip revision and configured settings",
	Flags: busFlags,
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		dev, closer, err := bringUp(ctx, c, cfg)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer closer()
		rev, err := dev.Revision(ctx)
		if err != nil {
			return console.Exit(1, "error reading revision: %s", console.Red(err))
		}
		console.PInfof(console.PictoPin, "chip revision: %s", console.White(rev))
		console.PInfof(console.PictoPin, "gain: %s, ldo: %sV, rate: %sSPS",
			console.White(cfg.Gain), console.White(cfg.LDO), console.White(cfg.SampleRate))
		return nil
	},
}
