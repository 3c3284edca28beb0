package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/TimothyStiles/bwtfm/alphabet"
	"github.com/TimothyStiles/bwtfm/bio"
	"github.com/TimothyStiles/bwtfm/bio/fasta"
	"github.com/TimothyStiles/bwtfm/bwt"
	"github.com/TimothyStiles/bwtfm/bwtio"
)

/******************************************************************************

This file holds the implementations behind the build, count, and kmer
subcommands defined in main.go. Each command opens its input path(s), does
one unit of work against the bwt/bwtio packages, and writes results to
c.App.Writer so tests can swap in a buffer instead of stdout.

******************************************************************************/

// buildCommand opens every -i path as its own FASTA parser and fans them all
// into a single BcrBuilder over bio.ManyToChannel, so that multiple input
// files are read concurrently instead of sequentially.
func buildCommand(c *cli.Context) error {
	paths := c.StringSlice("i")
	outPath := c.String("o")
	if len(paths) == 0 {
		return fmt.Errorf("build: no input files given")
	}

	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	var parsers []*bio.Parser[*fasta.Record, *fasta.Header]
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		files = append(files, f)

		parser, err := bio.NewFastaParser(f)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		parsers = append(parsers, parser)
	}

	builder, err := bwt.NewBcrBuilder(alphabet.DNA5.Size())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	records := make(chan *fasta.Record)
	parseErrc := make(chan error, 1)
	go func() {
		parseErrc <- bio.ManyToChannel(ctx, records, parsers...)
	}()

	var firstErr error
	count := 0
	for record := range records {
		if firstErr != nil {
			continue // keep draining so ManyToChannel's senders don't block forever
		}
		if err := builder.AddFastaRecord(record, alphabet.DNA5); err != nil {
			firstErr = fmt.Errorf("build: %w", err)
			cancel()
			continue
		}
		count++
	}
	if err := <-parseErrc; err != nil && firstErr == nil {
		firstErr = fmt.Errorf("build: %w", err)
	}
	if firstErr != nil {
		return firstErr
	}
	if count == 0 {
		return fmt.Errorf("build: no FASTA records found in %v", paths)
	}

	rle, report, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	defer out.Close()

	if err := bwtio.Write(out, rle, report.NumStrings); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "wrote %d strings, %d symbols, %d runs to %s\n",
		report.NumStrings, report.TotalLength, rle.NumRuns(), outPath)
	return nil
}

func loadFmIndex(path string) (*bwt.FmIndex, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	rle, _, err := bwtio.Read(in, alphabet.DNA5.Size())
	if err != nil {
		return nil, err
	}
	return bwt.NewFmIndex(rle)
}

func countCommand(c *cli.Context) error {
	fm, err := loadFmIndex(c.String("i"))
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	codes, err := alphabet.DNA5.EncodeAll(c.String("pattern"))
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	n, err := fm.Count(codes)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	fmt.Fprintln(c.App.Writer, n)
	return nil
}

func kmerCommand(c *cli.Context) error {
	fm, err := loadFmIndex(c.String("i"))
	if err != nil {
		return fmt.Errorf("kmer: %w", err)
	}

	enumerator, err := bwt.NewKmerEnumerator(fm, alphabet.DNA5, c.Int("k"), c.Int("workers"))
	if err != nil {
		return fmt.Errorf("kmer: %w", err)
	}

	results, errs := enumerator.Run()
	for result := range results {
		line, err := result.Format(alphabet.DNA5)
		if err != nil {
			return fmt.Errorf("kmer: %w", err)
		}
		fmt.Fprintln(c.App.Writer, line)
	}
	if err := <-errs; err != nil {
		return fmt.Errorf("kmer: %w", err)
	}
	return nil
}
