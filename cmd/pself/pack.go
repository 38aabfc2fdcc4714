package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/pkg/pself"
)

func packCmd() *cli.Command {
	var (
		outPath string
		version int64
	)

	return &cli.Command{
		Name:  "pack",
		Usage: "Build a PSELF container from payload files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"out"},
				Usage:       "output .pself path",
				Required:    true,
				Destination: &outPath,
			},
			&cli.Int64Flag{
				Name:        "format-version",
				Usage:       "container format version",
				Value:       1,
				Destination: &version,
			},
			&cli.StringSliceFlag{
				Name:    "section",
				Aliases: []string{"s"},
				Usage:   "section spec kind:name:path (kind = elf|pe|macho), repeatable",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			specs := cmd.StringSlice("section")
			if len(specs) == 0 {
				return cli.Exit("error: at least one --section is required", 1)
			}

			cfg := loadConfig()
			log := newLogger(cfg, cmd)

			w := pself.NewWriter(uint32(version))
			for _, spec := range specs {
				kind, name, path, err := parseSectionSpec(spec)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				content, err := os.ReadFile(path)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: read payload %q: %v", path, err), 1)
				}
				if err := w.AddSection(kind, name, content); err != nil {
					return cli.Exit(fmt.Sprintf("error: section %q: %v", name, err), 1)
				}
				log.Info("section added", "name", name, "kind", kind.String(), "bytes", len(content))
			}

			if err := w.WriteFile(outPath); err != nil {
				return cli.Exit(fmt.Sprintf("error: write container: %v", err), 1)
			}
			log.Info("container written", "path", outPath, "sections", len(specs))
			return nil
		},
	}
}

// parseSectionSpec splits "kind:name:path"; the name may be omitted
// ("kind::path" or "kind:path") to default to the payload's base name.
func parseSectionSpec(spec string) (pself.SectionKind, string, string, error) {
	parts := strings.SplitN(spec, ":", 3)
	var kindStr, name, path string
	switch len(parts) {
	case 2:
		kindStr, path = parts[0], parts[1]
	case 3:
		kindStr, name, path = parts[0], parts[1], parts[2]
	default:
		return 0, "", "", fmt.Errorf("section spec %q: want kind:name:path", spec)
	}

	var kind pself.SectionKind
	switch strings.ToLower(kindStr) {
	case "elf":
		kind = pself.KindELF
	case "pe":
		kind = pself.KindPE
	case "macho", "mach-o":
		kind = pself.KindMachO
	default:
		return 0, "", "", fmt.Errorf("section spec %q: unknown kind %q", spec, kindStr)
	}

	if path == "" {
		return 0, "", "", fmt.Errorf("section spec %q: missing payload path", spec)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return kind, name, path, nil
}
