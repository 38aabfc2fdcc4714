package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/pkg/pself"
)

type inspectSection struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Offset   uint32 `json:"offset"`
	Length   uint32 `json:"length"`
	Hash     string `json:"hash"`
	Verified bool   `json:"verified"`
}

type inspectReport struct {
	Version      uint32           `json:"version"`
	SectionCount uint32           `json:"section_count"`
	Sections     []inspectSection `json:"sections"`
}

func inspectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header and section table of a .pself container",
		ArgsUsage: "<container>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit the report as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("usage: pself inspect <container>", 1)
			}

			f, err := pself.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open container: %v", err), 1)
			}
			defer func() { _ = f.Close() }()

			report := inspectReport{
				Version:      f.Header.Version,
				SectionCount: f.Header.SectionCount,
				Sections:     make([]inspectSection, 0, len(f.Sections)),
			}
			for i := range f.Sections {
				sec := &f.Sections[i]
				verified := false
				if content, err := f.SectionData(sec); err == nil {
					verified = sec.VerifyContent(content)
				}
				report.Sections = append(report.Sections, inspectSection{
					Index:    i,
					Kind:     sec.Kind.String(),
					Name:     sec.Name,
					Offset:   sec.Offset,
					Length:   sec.Length,
					Hash:     hex.EncodeToString(sec.Hash[:]),
					Verified: verified,
				})
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Printf("PSELF v%d, sections: %d\n", report.Version, report.SectionCount)
			for _, s := range report.Sections {
				status := "FAIL"
				if s.Verified {
					status = "ok"
				}
				fmt.Printf("  [%d] %-6s %-32s offset=%-8d length=%-8d hash=%s… verify=%s\n",
					s.Index, s.Kind, s.Name, s.Offset, s.Length, s.Hash[:16], status)
			}
			return nil
		},
	}
}
