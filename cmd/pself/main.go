// cmd/pself/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    "pself",
		Usage:   "PSELF multi-platform executable container toolkit",
		Version: version.String(),
		Flags:   globalFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			runCmd(),
			packCmd(),
			inspectCmd(),
			fingerprintCmd(),
			huntCmd(),
			serveCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
