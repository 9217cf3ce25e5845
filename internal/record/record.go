package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// AddressRecord is a named pointer chain. The first entry of Address is the
// base address, every following entry is an offset applied in order by
// whatever walks the chain.
type AddressRecord struct {
	Name    string   `json:"Name"`
	Address []uint64 `json:"Address"`
}

var (
	ErrEmptyName     = errors.New("record name is empty")
	ErrNoBaseAddress = errors.New("record has no base address")
)

// New returns a record holding a copy of offsets. A nil offsets slice
// becomes an empty one so the record always encodes as an array.
func New(name string, offsets []uint64) AddressRecord {
	address := make([]uint64, len(offsets))
	copy(address, offsets)

	return AddressRecord{
		Name:    name,
		Address: address,
	}
}

// Encode serializes the record as a single line of JSON without a
// trailing newline.
func Encode(rec *AddressRecord) ([]byte, error) {
	out := *rec
	if out.Address == nil {
		out.Address = []uint64{}
	}

	buf := &bytes.Buffer{}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&out); err != nil {
		return nil, err
	}

	// Encoder always terminates the value with '\n'
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// WriteTo writes the encoded record followed by a newline.
func WriteTo(w io.Writer, rec *AddressRecord) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))
	return err
}

// Decode parses a single JSON record. Unknown fields, trailing data and
// numbers that are not unsigned 64-bit integers are rejected.
func Decode(data []byte) (*AddressRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rec AddressRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode address record: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode address record: trailing data after object")
	}

	if rec.Address == nil {
		rec.Address = []uint64{}
	}

	return &rec, nil
}

// Validate checks the shape a consumer needs to walk the chain.
func Validate(rec *AddressRecord) error {
	if strings.TrimSpace(rec.Name) == "" {
		return ErrEmptyName
	}
	if len(rec.Address) == 0 {
		return ErrNoBaseAddress
	}
	return nil
}

// Format renders the name on one line and the comma-joined offsets in base
// 10 on the next.
func Format(rec *AddressRecord) string {
	parts := make([]string, len(rec.Address))
	for i, v := range rec.Address {
		parts[i] = fmt.Sprintf("%d", v)
	}

	return rec.Name + "\n" + strings.Join(parts, ", ")
}
