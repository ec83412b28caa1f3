package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gophertribe/aht20"
	"github.com/gophertribe/aht20/cmd/aht20/console"
)

var measureCmd = cli.Command{
	Name:    "measure",
	Aliases: []string{"read"},
	Usage:   "perform a single measurement",
	Flags:   sensorFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		s, err := startSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "sensor startup error: %s", console.Red(err))
		}
		m, err := s.Measure(ctx)
		if err != nil {
			return console.Exit(1, "measurement error: %s", console.Red(err))
		}
		printMeasurement(m)
		return nil
	},
}

var watchCmd = cli.Command{
	Name:  "watch",
	Usage: "measure periodically until interrupted",
	Flags: append(sensorFlags(),
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Value:   2 * time.Second,
		},
	),
	Action: func(c *cli.Context) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx = console.SetVerbose(ctx, c.Bool("verbose"))

		s, err := startSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "sensor startup error: %s", console.Red(err))
		}
		ticker := time.NewTicker(c.Duration("interval"))
		defer ticker.Stop()
		for {
			m, err := s.Measure(ctx)
			if err != nil {
				console.Errorf("measurement error: %s", console.Red(err))
			} else {
				printMeasurement(m)
			}
			select {
			case <-ctx.Done():
				console.Print("bye")
				return nil
			case <-ticker.C:
			}
		}
	},
}

func printMeasurement(m aht20.Measurement) {
	console.PInfof(console.PictoClock, "%s", m.Timestamp.Format(time.DateTime))
	console.PInfof(console.PictoThermometer, " %s °C", console.White(m.TemperatureC))
	console.PInfof(console.PictoHumidity, "%s %%RH", console.White(m.HumidityRH))
	console.PInfof(console.PictoDew, "%s °C dew point", console.Cyan(m.DewPointC))
}
