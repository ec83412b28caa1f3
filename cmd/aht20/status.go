package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/gophertribe/aht20/cmd/aht20/console"
)

var statusCmd = cli.Command{
	Name:  "status",
	Usage: "read the raw sensor status byte",
	Flags: sensorFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		s, err := startSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "sensor startup error: %s", console.Red(err))
		}
		state, err := s.ReadState(ctx)
		if err != nil {
			return console.Exit(1, "status read error: %s", console.Red(err))
		}
		// raw byte; bit meanings are left to the datasheet
		console.Printf("status: %#02x (%08b)\n", state, state)
		return nil
	},
}
