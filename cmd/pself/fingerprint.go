package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/internal/fingerprint"
)

func fingerprintCmd() *cli.Command {
	var (
		snapshotPath string
		savePath     string
	)

	return &cli.Command{
		Name:      "fingerprint",
		Usage:     "Baseline files and re-verify them for drift",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "snapshot",
				Usage:       "verify against a previously saved baseline instead of a fresh one",
				Destination: &snapshotPath,
			},
			&cli.StringFlag{
				Name:        "save",
				Usage:       "write the baseline snapshot to this path",
				Destination: &savePath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("usage: pself fingerprint [--snapshot baseline.json] <file>...", 1)
			}

			cfg := loadConfig()
			log := newLogger(cfg, cmd)

			blobs := make(map[string][]byte, len(paths))
			for _, path := range paths {
				content, err := os.ReadFile(path)
				if err != nil {
					log.Error("failed to read file", "path", path, "error", err)
					continue
				}
				blobs[path] = content
			}
			if len(blobs) == 0 {
				return cli.Exit("error: no readable files", 1)
			}

			store := fingerprint.NewStore()
			if snapshotPath != "" {
				if err := store.LoadSnapshot(snapshotPath); err != nil {
					return cli.Exit(fmt.Sprintf("error: load snapshot: %v", err), 1)
				}
				log.Info("baseline restored", "path", snapshotPath, "entries", store.Len())
			} else {
				store.LoadInitial(blobs)
				for _, name := range store.Names() {
					log.Info("loaded fingerprint", "name", name)
				}
			}

			drifted := false
			for name, content := range blobs {
				switch store.Verify(name, content) {
				case fingerprint.Ok:
					log.Info("section verified", "name", name)
				case fingerprint.Mismatch:
					log.Error("integrity violation", "name", name)
					drifted = true
				case fingerprint.UnknownName:
					log.Error("unknown section", "name", name)
					drifted = true
				}
			}

			if savePath != "" {
				if err := store.SaveSnapshot(savePath); err != nil {
					return cli.Exit(fmt.Sprintf("error: save snapshot: %v", err), 1)
				}
				log.Info("baseline saved", "path", savePath)
			}
			if drifted {
				return cli.Exit("fingerprint verification failed", 1)
			}
			return nil
		},
	}
}
