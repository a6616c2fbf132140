// Package main is the fieldplan command, which runs the field planner on scenario files.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	planFlagScenario = "scenario"
	planFlagSeed     = "seed"
	planFlagCycles   = "cycles"
	planFlagRate     = "rate"
	planFlagPlot     = "plot"
	planFlagRows     = "rows"
	flagDebug        = "debug"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "fieldplan",
		Usage: "plan robot motion across a field of obstacles",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "run the planner on a scenario for a number of control cycles",
				UsageText: "fieldplan plan --scenario <path> [other options]",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     planFlagScenario,
						Required: true,
						Usage:    "YAML scenario file",
					},
					&cli.IntFlag{
						Name:  planFlagSeed,
						Usage: "random seed for the planner, overrides the scenario's rseed",
					},
					&cli.IntFlag{
						Name:  planFlagCycles,
						Value: 50,
						Usage: "maximum number of control cycles to simulate",
					},
					&cli.Float64Flag{
						Name:  planFlagRate,
						Value: 60,
						Usage: "control loop rate in Hz",
					},
					&cli.PathFlag{
						Name:  planFlagPlot,
						Usage: "write a PNG of the final trajectory to this path",
					},
					&cli.IntFlag{
						Name:  planFlagRows,
						Value: 20,
						Usage: "maximum number of trajectory rows to print",
					},
				},
				Action: PlanAction,
			},
		},
	}
}
