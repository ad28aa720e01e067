// Command marcpd is the one CLI surface for the copyright-status matching
// engine: it loads configuration, builds reference indices (from cache when
// valid), drives the batch matcher over an input stream, and writes results.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:                   "marcpd",
		Usage:                  "match MARC bibliographic records against US copyright registration and renewal records",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a JSON configuration override file",
			},
			&cli.IntFlag{
				Name:  "verbosity",
				Usage: "0=quiet 1=normal 2=verbose 3=debug",
				Value: 1,
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			cacheCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "marcpd: %v\n", err)
		os.Exit(1)
	}
}
