// Package main provides the typedcsv CLI.
//
// typedcsv rewrites a CSV file under a session configuration: it reads the
// input with the configured delimiter and quote and writes it back out with
// the same knobs, normalizing record terminators and quoting along the way.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oleg578/swiftcsv"

	"typedcsv/options"
)

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: typedcsv <input.csv> <output.csv> [config.yaml]")
		os.Exit(2)
	}

	cfg := &options.Config{}
	if len(os.Args) == 4 {
		loaded, err := options.LoadFile(os.Args[3])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := rewrite(os.Args[1], os.Args[2], cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rewrite(inPath, outPath string, cfg *options.Config) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	r := swiftcsv.NewReader(in)
	r.Comma = cfg.DelimiterByte()
	r.Quote = cfg.QuoteByte()

	w := swiftcsv.NewWriter(out)
	w.Comma = cfg.DelimiterByte()
	w.Quote = cfg.QuoteByte()
	w.UseCRLF = cfg.CRLF
	w.AlwaysQuote = cfg.AlwaysQuote

	for {
		r.FieldsPerRecord = -1
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			out.Close()
			return fmt.Errorf("reading %s: %w", inPath, err)
		}
		if err := w.Write(record); err != nil {
			out.Close()
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	if err := w.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return out.Close()
}
