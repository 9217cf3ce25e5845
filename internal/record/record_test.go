package record

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"testing"
)

func TestEncodeScenarios(t *testing.T) {
	tests := []struct {
		name   string
		record AddressRecord
		want   string
	}{
		{
			"first chain",
			New("NPCDialogue", []uint64{0x02594140, 0x20, 0x100, 0x0}),
			`{"Name":"NPCDialogue","Address":[39403840,32,256,0]}`,
		},
		{
			"second chain",
			New("NPCDialogue", []uint64{0x01FDC4E8, 0x8, 0x18, 0x20, 0x100, 0x0}),
			`{"Name":"NPCDialogue","Address":[33408232,8,24,32,256,0]}`,
		},
		{
			"above 32 bits",
			New("Wide", []uint64{0x100000000, 0x7FF6A0000000}),
			`{"Name":"Wide","Address":[4294967296,140697223036928]}`,
		},
		{
			"max uint64",
			New("Max", []uint64{math.MaxUint64}),
			`{"Name":"Max","Address":[18446744073709551615]}`,
		},
		{
			"empty offsets",
			New("Empty", []uint64{}),
			`{"Name":"Empty","Address":[]}`,
		},
		{
			"nil offsets",
			AddressRecord{Name: "Nil"},
			`{"Name":"Nil","Address":[]}`,
		},
		{
			"html characters kept",
			New("<a&b>", []uint64{1}),
			`{"Name":"<a&b>","Address":[1]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(&tt.record)
			if err != nil {
				t.Fatalf("unexpected encode error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Encode mismatch: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	rec := New("NPCDialogue", []uint64{0x02594140, 0x20, 0x100, 0x0})

	first, err := Encode(&rec)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	for i := 0; i < 10; i++ {
		next, err := Encode(&rec)
		if err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}
		if !bytes.Equal(first, next) {
			t.Fatalf("output changed between runs: %s vs %s", first, next)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	records := []AddressRecord{
		New("NPCDialogue", []uint64{0x02594140, 0x20, 0x100, 0x0}),
		New("Duplicates", []uint64{0, 0, 0, 0}),
		New("Empty", nil),
		New("Wide", []uint64{math.MaxUint64, 0x100000000, 1}),
		New("", []uint64{5}),
	}

	for _, original := range records {
		encoded, err := Encode(&original)
		if err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}

		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("unexpected decode error for %s: %v", encoded, err)
		}

		if decoded.Name != original.Name {
			t.Errorf("Name mismatch: got %q, want %q", decoded.Name, original.Name)
		}
		if !slices.Equal(decoded.Address, original.Address) {
			t.Errorf("Address mismatch: got %v, want %v", decoded.Address, original.Address)
		}
	}
}

func TestNewCopiesOffsets(t *testing.T) {
	offsets := []uint64{1, 2, 3}
	rec := New("copy", offsets)
	offsets[0] = 99

	if rec.Address[0] != 1 {
		t.Fatalf("record shares caller slice: got %d", rec.Address[0])
	}

	if New("nil", nil).Address == nil {
		t.Fatal("expected non-nil Address for nil offsets")
	}
}

func TestWriteToAppendsNewline(t *testing.T) {
	rec := New("NPCDialogue", []uint64{0x02594140, 0x20, 0x100, 0x0})

	var buf bytes.Buffer
	if err := WriteTo(&buf, &rec); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	want := "{\"Name\":\"NPCDialogue\",\"Address\":[39403840,32,256,0]}\n"
	if buf.String() != want {
		t.Errorf("output mismatch: got %q, want %q", buf.String(), want)
	}
}

func TestDecodeNullAddress(t *testing.T) {
	for _, input := range []string{
		`{"Name":"x","Address":null}`,
		`{"Name":"x"}`,
	} {
		rec, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("unexpected decode error for %s: %v", input, err)
		}
		if rec.Address == nil || len(rec.Address) != 0 {
			t.Errorf("expected empty Address for %s, got %v", input, rec.Address)
		}
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"negative offset", `{"Name":"x","Address":[-1]}`},
		{"fractional offset", `{"Name":"x","Address":[1.5]}`},
		{"exponent", `{"Name":"x","Address":[1e3]}`},
		{"overflow", `{"Name":"x","Address":[18446744073709551616]}`},
		{"string offset", `{"Name":"x","Address":["0x20"]}`},
		{"unknown field", `{"Name":"x","Address":[],"Extra":1}`},
		{"trailing data", `{"Name":"x","Address":[]} {}`},
		{"not an object", `[1,2,3]`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); err == nil {
				t.Fatalf("expected error for %s, got nil", tt.input)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		record AddressRecord
		want   error
	}{
		{"valid", New("NPCDialogue", []uint64{1}), nil},
		{"blank name", New("  ", []uint64{1}), ErrEmptyName},
		{"no offsets", New("NPCDialogue", nil), ErrNoBaseAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.record)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate mismatch: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	rec := New("NPCDialogue", []uint64{0x01FDC4E8, 0x8, 0x18, 0x20, 0x100, 0x0})

	want := "NPCDialogue\n33408232, 8, 24, 32, 256, 0"
	if got := Format(&rec); got != want {
		t.Errorf("Format mismatch: got %q, want %q", got, want)
	}
}

func TestFormatEmptyOffsets(t *testing.T) {
	rec := New("NPCDialogue", nil)

	if got := Format(&rec); got != "NPCDialogue\n" {
		t.Errorf("Format mismatch: got %q", got)
	}
}
