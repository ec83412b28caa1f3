package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/gophertribe/aht20/cmd/aht20/console"
)

var resetCmd = cli.Command{
	Name:  "reset",
	Usage: "soft-reset the sensor",
	Flags: append(sensorFlags(),
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
	),
	Action: func(c *cli.Context) error {
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("reset aborts any measurement in flight, continue?")
			if err != nil {
				return console.Exit(1, "prompt error: %s", console.Red(err))
			}
			if answer != console.Yes {
				console.PInfof(console.PictoStop, "aborted")
				return nil
			}
		}
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		s, err := startSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "sensor startup error: %s", console.Red(err))
		}
		// startSensor already went through reset+initialize; this is the
		// manual re-reset path
		err = s.Reset(ctx)
		if err != nil {
			return console.Exit(1, "reset error: %s", console.Red(err))
		}
		console.Info("sensor reset")
		return nil
	},
}
