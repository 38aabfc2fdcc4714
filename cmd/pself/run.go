package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/internal/extract"
	"github.com/Azccriminal/floatboat/pkg/pself"
)

func runCmd() *cli.Command {
	var outputDir string

	return &cli.Command{
		Name:      "run",
		Usage:     "Load a PSELF container and extract the section for this platform",
		ArgsUsage: "<container>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output-dir",
				Aliases:     []string{"o"},
				Usage:       "directory for the extracted payload",
				Destination: &outputDir,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("usage: pself run <container>", 1)
			}

			cfg := loadConfig()
			log := newLogger(cfg, cmd)
			dir := outputDir
			if dir == "" {
				dir = cfg.OutputDir
			}

			f, err := pself.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open container: %v", err), 1)
			}
			defer func() { _ = f.Close() }()

			log.Info("container parsed", "version", f.Header.Version, "sections", f.Header.SectionCount)

			sink := &extract.FileSink{Dir: dir, Log: log}
			loader := &pself.Loader{Sink: sink, Log: log}
			res, err := loader.Load(f.Data)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("section loaded", "section", res.Name, "kind", res.Kind.String(), "path", sink.LastPath())
			return nil
		},
	}
}
