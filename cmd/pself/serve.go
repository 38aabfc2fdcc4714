package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/internal/driftapi"
	"github.com/Azccriminal/floatboat/internal/fingerprint"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		snapshot    string
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the fingerprint drift API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "snapshot",
				Usage:       "baseline snapshot to preload",
				Destination: &snapshot,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := loadConfig()
			log := newLogger(cfg, cmd)
			if cfg.ServeAddress != "" && !cmd.IsSet("addr") {
				addr = cfg.ServeAddress
			}

			store := fingerprint.NewStore()
			if snapshot != "" {
				if err := store.LoadSnapshot(snapshot); err != nil {
					return err
				}
				log.Info("baseline preloaded", "path", snapshot, "entries", store.Len())
			}

			server := driftapi.NewServer(store, log)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting drift server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
