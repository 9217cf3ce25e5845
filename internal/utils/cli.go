package utils

import (
	"flag"
	"io"
	"time"

	"github.com/0xRadioAc7iv/hermes-address/internal"
	"github.com/0xRadioAc7iv/hermes-address/internal/chains"
)

type CLIOptions struct {
	Chain      string
	Name       string
	Offsets    string
	OffsetsSet bool // -offsets given, even as ""
	ChainFile  string
	List       bool
	Fetch      bool
	URL        string
	Timeout    time.Duration
}

// ParseCLIInputs parses args (without the program name) into CLIOptions.
func ParseCLIInputs(args []string, output io.Writer) (*CLIOptions, error) {
	opts := &CLIOptions{}

	fs := flag.NewFlagSet("hermes-address", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Chain, "chain", chains.DefaultChain, "Named chain to print")
	fs.StringVar(&opts.Name, "name", "", "Override the record name")
	fs.StringVar(&opts.Offsets, "offsets", "", `Override the offsets, e.g. "0x02594140 0x20 0x100 0"`)
	fs.StringVar(&opts.ChainFile, "file", "", "YAML chain file merged over the built-in chains")
	fs.BoolVar(&opts.List, "list", false, "List the available chains and exit")
	fs.BoolVar(&opts.Fetch, "fetch", false, "Fetch the published address document instead of printing a chain")
	fs.StringVar(&opts.URL, "url", internal.DEFAULT_URL, "Address document URL used with -fetch")
	fs.DurationVar(&opts.Timeout, "timeout", internal.DEFAULT_TIMEOUT, "HTTP timeout used with -fetch")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "offsets" {
			opts.OffsetsSet = true
		}
	})

	return opts, nil
}
