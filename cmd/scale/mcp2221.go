package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/scale/adapter"
	"github.com/mklimuk/scale/cmd/scale/console"
)

var mcp2221Cmd = cli.Command{
	Name:  "mcp2221",
	Usage: "MCP2221 adapter diagnostics",
	Subcommands: []*cli.Command{
		&mcp2221StatusCmd,
		&mcp2221ReleaseCmd,
	},
}

var mcp2221StatusCmd = cli.Command{
	Name:  "status",
	Usage: "print the I2C engine status",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		ad := adapter.NewMCP2221()
		status, err := ad.Status(ctx)
		if err != nil {
			return console.Exit(1, "error getting adapter status: %s", console.Red(err))
		}
		printStatus(status)
		return nil
	},
}

var mcp2221ReleaseCmd = cli.Command{
	Name:  "release",
	Usage: "cancel a pending transfer and free the bus",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := commandContext(c)
		ad := adapter.NewMCP2221()
		status, err := ad.ReleaseBus(ctx)
		if err != nil {
			return console.Exit(1, "error releasing bus: %s", console.Red(err))
		}
		console.PInfof(console.PictoCheck, "bus released")
		printStatus(status)
		return nil
	},
}

func printStatus(status *adapter.MCP2221Status) {
	console.Printf("data buffer counter: %s\n", console.White(status.I2CDataBufferCounter))
	console.Printf("speed divider:       %s\n", console.White(status.I2CSpeedDivider))
	console.Printf("timeout:             %s\n", console.White(status.I2CTimeout))
	console.Printf("current address:     %s\n", console.White(status.CurrentAddress))
	console.Printf("last write req/sent: %s/%s\n",
		console.White(status.LastWriteRequestedSize), console.White(status.LastWriteSentSize))
	console.Printf("read pending:        %s\n", console.White(status.ReadPending))
}
