package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pulibrary/marc-pd-tool-sub003/internal/cache"
)

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "inspect or clear the on-disk index/corpus cache",
		Subcommands: []*cli.Command{
			{
				Name:  "info",
				Usage: "list cached artifacts and their sizes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cache-dir", Value: ".marcpd-cache"},
				},
				Action: func(c *cli.Context) error {
					cch := cache.New(c.String("cache-dir"), false, false)
					entries, err := cch.Info()
					if err != nil {
						return err
					}
					if len(entries) == 0 {
						fmt.Println("cache is empty")
						return nil
					}
					for _, e := range entries {
						fmt.Printf("%-16s %-12s %8d bytes  written %s\n",
							e.Kind, e.Fingerprint, e.SizeBytes, e.WrittenAt.Format("2006-01-02 15:04:05"))
					}
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "remove the entire cache directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "cache-dir", Value: ".marcpd-cache"},
				},
				Action: func(c *cli.Context) error {
					cch := cache.New(c.String("cache-dir"), false, false)
					if err := cch.ClearAll(); err != nil {
						return fmt.Errorf("clearing cache: %w", err)
					}
					fmt.Println("cache cleared")
					return nil
				},
			},
		},
	}
}
