package main

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/internal/procwatch"
)

func huntCmd() *cli.Command {
	var interval time.Duration

	return &cli.Command{
		Name:  "hunt",
		Usage: "Watch the process list for forbidden program names",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "forbidden command substring (case-insensitive), repeatable",
			},
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "scan interval",
				Destination: &interval,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := loadConfig()
			log := newLogger(cfg, cmd)

			patterns := cmd.StringSlice("pattern")
			if len(patterns) == 0 {
				patterns = cfg.HuntPatterns
			}
			if len(patterns) == 0 {
				return cli.Exit("error: no forbidden patterns given (--pattern or hunt_patterns in config)", 1)
			}
			scanEvery := interval
			if scanEvery <= 0 {
				scanEvery = cfg.huntInterval()
			}

			hunter := procwatch.NewHunter(patterns, scanEvery, func(msg string) {
				log.Error(msg)
			}, log)

			log.Info("hunting", "patterns", len(patterns), "interval", scanEvery.String())
			err := hunter.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
