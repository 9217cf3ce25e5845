// Package chains holds the named pointer chains the CLI can print. Each
// chain targets one build of the client, so switching builds means picking
// a different key rather than editing the literals.
package chains

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/0xRadioAc7iv/hermes-address/internal/record"
)

const DefaultChain = "v1"

var ErrUnknownChain = errors.New("unknown chain")

// Chain is one named offset list as stored in the registry or a chain file.
type Chain struct {
	Name    string   `yaml:"name"`
	Offsets []uint64 `yaml:"offsets"`
}

type chainFile struct {
	Chains map[string]Chain `yaml:"chains"`
}

var builtin = map[string]Chain{
	// Dialogue text pointer, e.g. "O Sultantree, hallowd spirit of my line..."
	"v1": {
		Name:    "NPCDialogue",
		Offsets: []uint64{0x02594140, 0x20, 0x100, 0x0},
	},
	"v2": {
		Name:    "NPCDialogue",
		Offsets: []uint64{0x01FDC4E8, 0x8, 0x18, 0x20, 0x100, 0x0},
	},
}

// Registry maps chain keys to chains. Keys are case-insensitive.
type Registry struct {
	chains map[string]Chain
}

// NewRegistry returns a registry seeded with the built-in chains.
func NewRegistry() *Registry {
	r := &Registry{chains: make(map[string]Chain, len(builtin))}
	for k, c := range builtin {
		r.Add(k, c)
	}
	return r
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Add stores c under key, replacing any chain already there.
func (r *Registry) Add(key string, c Chain) {
	offsets := make([]uint64, len(c.Offsets))
	copy(offsets, c.Offsets)

	r.chains[normalizeKey(key)] = Chain{Name: c.Name, Offsets: offsets}
}

// Lookup builds the record for the chain stored under key.
func (r *Registry) Lookup(key string) (record.AddressRecord, error) {
	c, ok := r.chains[normalizeKey(key)]
	if !ok {
		return record.AddressRecord{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownChain, key, strings.Join(r.Names(), ", "))
	}

	return record.New(c.Name, c.Offsets), nil
}

// Names returns the registered keys in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.chains))
	for k := range r.chains {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Load merges the chains of a YAML chain file into the registry.
//
//	chains:
//	  v3:
//	    name: NPCDialogue
//	    offsets: [0x01EC0F40, 0x20, 0x100, 0x0]
func (r *Registry) Load(rd io.Reader) error {
	var f chainFile

	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse chain file: %w", err)
	}

	// Keys fold case; two spellings of one key are rejected
	seen := make(map[string]string, len(f.Chains))
	for _, k := range slices.Sorted(maps.Keys(f.Chains)) {
		nk := normalizeKey(k)
		if nk == "" {
			return errors.New("parse chain file: empty chain key")
		}
		if prev, ok := seen[nk]; ok {
			return fmt.Errorf("parse chain file: duplicate chain key %q (also %q)", prev, k)
		}
		seen[nk] = k
	}

	for k, c := range f.Chains {
		r.Add(k, c)
	}

	return nil
}

// LoadFile opens path and loads it with Load.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return r.Load(f)
}

// Lookup builds a record from the built-in chains.
func Lookup(key string) (record.AddressRecord, error) {
	return NewRegistry().Lookup(key)
}

// Names lists the built-in chain keys.
func Names() []string {
	return NewRegistry().Names()
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// ParseOffsets parses a chain literal such as "0x02594140 0x20 0x100 0".
// Tokens are split shell style and commas also separate values. Each value
// takes a 0x, 0o or 0b prefix, otherwise it is decimal.
func ParseOffsets(s string) ([]uint64, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parse offsets: %w", err)
	}

	offsets := []uint64{}
	for _, word := range words {
		for _, tok := range strings.FieldsFunc(word, isSeparator) {
			v, err := strconv.ParseUint(tok, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("parse offsets: invalid value %q: %w", tok, err)
			}
			offsets = append(offsets, v)
		}
	}

	return offsets, nil
}
