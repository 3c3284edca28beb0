package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is seperated from application so tests can drive the app directly
// against an in-memory reader/writer instead of the real os.Args/os.Stdout.
func main() {
	run(os.Args)
}

func run(args []string) {
	app := application()
	err := app.Run(args)
	if err != nil {
		log.Fatal(err)
	}
}

// application defines the command line app and its subcommands: build,
// count, and kmer. Flags are templated here; the implementations live in
// commands.go to keep this file focused on the command surface.
func application() *cli.App {
	app := &cli.App{
		Name:  "bwtfm",
		Usage: "Build and query a multi-string Burrows-Wheeler transform and FM-index.",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "alphabet",
				Value: "dna5",
				Usage: "Alphabet to encode input with. Currently only dna5 is built in.",
			},
		},

		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Build a BWT from one or more FASTA files and write it to a binary BWT file.",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "i",
						Usage:    "Input FASTA path. Repeat -i to ingest several files concurrently.",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "o",
						Usage:    "Output binary BWT path.",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return buildCommand(c)
				},
			},
			{
				Name:  "count",
				Usage: "Count occurrences of a pattern against a binary BWT file.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "i",
						Usage:    "Input binary BWT path.",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "pattern",
						Usage:    "Pattern to search for.",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return countCommand(c)
				},
			},
			{
				Name:  "kmer",
				Usage: "Enumerate canonical k-mers and their forward/reverse-complement counts.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "i",
						Usage:    "Input binary BWT path.",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "k",
						Usage:    "K-mer length.",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 4,
						Usage: "Number of concurrent enumeration workers.",
					},
				},
				Action: func(c *cli.Context) error {
					return kmerCommand(c)
				},
			},
		},
	}

	return app
}
