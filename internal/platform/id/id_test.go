package id

import (
	"encoding/base32"
	"strings"
	"testing"
)

func mustDecode(t *testing.T, value string) []byte {
	t.Helper()
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(value))
	if err != nil {
		t.Fatalf("decode id %q: %v", value, err)
	}
	if len(raw) != 16 {
		t.Fatalf("expected 16 decoded bytes, got %d", len(raw))
	}
	return raw
}

func TestNewIDShape(t *testing.T) {
	value, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if len(value) != 26 {
		t.Fatalf("expected 26 characters, got %d in %q", len(value), value)
	}
	if strings.ContainsRune(value, '=') {
		t.Fatalf("expected no padding in %q", value)
	}
	for _, r := range value {
		lower := r >= 'a' && r <= 'z'
		digit := r >= '2' && r <= '7'
		if !lower && !digit {
			t.Fatalf("character %q outside the lowercase base32 alphabet in %q", r, value)
		}
	}

	mustDecode(t, value)
}

func TestNewIDCarriesUUID4Bits(t *testing.T) {
	value, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	raw := mustDecode(t, value)

	if version := raw[6] >> 4; version != 4 {
		t.Fatalf("expected uuid version 4, got %d", version)
	}
	if variant := raw[8] & 0xC0; variant != 0x80 {
		t.Fatalf("expected uuid variant 0x80, got 0x%X", variant)
	}
}

func TestNewIDDoesNotRepeat(t *testing.T) {
	seen := make(map[string]struct{}, 128)
	for i := 0; i < 128; i++ {
		value, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if _, dup := seen[value]; dup {
			t.Fatalf("id %q repeated after %d draws", value, i)
		}
		seen[value] = struct{}{}
	}
}
