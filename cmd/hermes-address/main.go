package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/0xRadioAc7iv/hermes-address/hermes"
	"github.com/0xRadioAc7iv/hermes-address/internal/chains"
	"github.com/0xRadioAc7iv/hermes-address/internal/record"
	"github.com/0xRadioAc7iv/hermes-address/internal/utils"
)

func main() {
	logger := log.New(os.Stderr, "hermes-address: ", 0)

	opts, err := utils.ParseCLIInputs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, opts *utils.CLIOptions, out io.Writer) error {
	if opts.Fetch {
		return fetch(ctx, opts, out)
	}

	reg := chains.NewRegistry()
	if opts.ChainFile != "" {
		if err := reg.LoadFile(opts.ChainFile); err != nil {
			return fmt.Errorf("load chain file: %w", err)
		}
	}

	if opts.List {
		return list(reg, out)
	}

	rec, err := buildRecord(reg, opts)
	if err != nil {
		return err
	}

	return record.WriteTo(out, &rec)
}

func buildRecord(reg *chains.Registry, opts *utils.CLIOptions) (record.AddressRecord, error) {
	rec, err := reg.Lookup(opts.Chain)
	if err != nil {
		return record.AddressRecord{}, err
	}

	if opts.Name != "" {
		rec.Name = opts.Name
	}

	if opts.OffsetsSet {
		offsets, err := chains.ParseOffsets(opts.Offsets)
		if err != nil {
			return record.AddressRecord{}, err
		}
		rec = record.New(rec.Name, offsets)
	}

	return rec, nil
}

func list(reg *chains.Registry, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, key := range reg.Names() {
		rec, err := reg.Lookup(key)
		if err != nil {
			return err
		}

		data, err := record.Encode(&rec)
		if err != nil {
			return err
		}

		sum, err := record.Checksum(&rec)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%08x\t%s\n", key, sum, data)
	}

	return tw.Flush()
}

func fetch(ctx context.Context, opts *utils.CLIOptions, out io.Writer) error {
	rec, err := hermes.Fetch(ctx, hermes.WithURL(opts.URL), hermes.WithTimeout(opts.Timeout))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, record.Format(rec))
	return err
}
