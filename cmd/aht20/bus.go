package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/gophertribe/aht20"
	"github.com/gophertribe/aht20/adapter"
	"github.com/gophertribe/aht20/cmd/aht20/console"
	"github.com/gophertribe/aht20/i2c"
)

func sensorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Value:   "periph",
			Usage:   "bus adapter: periph, mcp2221 or gobot",
		},
		&cli.StringFlag{
			Name:    "bus",
			Aliases: []string{"b"},
			Usage:   "i2c bus name (default \"1\")",
		},
		&cli.IntFlag{
			Name:  "addr",
			Usage: "7-bit device address (default 0x38)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "sensor config file (YAML)",
		},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	}
}

// sensorConfig merges the config file (if any) with flag overrides. Defaults
// are resolved by aht20.Start.
func sensorConfig(c *cli.Context) (aht20.Config, error) {
	var cfg aht20.Config
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = aht20.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	if bus := c.String("bus"); bus != "" {
		cfg.Bus = bus
	}
	if addr := c.Int("addr"); addr != 0 {
		cfg.Address = byte(addr)
	}
	return cfg, nil
}

func busOpener(ctx context.Context, c *cli.Context) aht20.BusOpener {
	switch c.String("adapter") {
	case "mcp2221":
		return func(string) (aht20.I2CBus, error) {
			a := adapter.NewMCP2221()
			// probe the engine before handing the adapter out
			_, err := a.Status(ctx)
			if err != nil {
				return nil, fmt.Errorf("adapter initialization error: %w", err)
			}
			return a, nil
		}
	case "gobot":
		return func(bus string) (aht20.I2CBus, error) {
			adaptor := nanopi.NewNeoAdaptor()
			err := adaptor.Connect()
			if err != nil {
				return nil, fmt.Errorf("could not connect gobot adaptor: %w", err)
			}
			busNr := -1
			if n, err := strconv.Atoi(bus); err == nil {
				busNr = n
			}
			return adapter.NewGobotBus(adaptor, busNr), nil
		}
	default:
		return i2c.Open
	}
}

func startSensor(ctx context.Context, c *cli.Context) (*aht20.Sensor, error) {
	cfg, err := sensorConfig(c)
	if err != nil {
		return nil, err
	}
	s, err := aht20.Start(ctx, cfg, busOpener(ctx, c))
	if err != nil {
		return nil, err
	}
	console.Debugf("sensor ready on bus %s at %#02x", s.Bus(), s.Address())
	return s, nil
}
