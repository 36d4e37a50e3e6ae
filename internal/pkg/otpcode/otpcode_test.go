package otpcode

import (
	"strconv"
	"testing"
)

func TestGenerateRange(t *testing.T) {
	g := NewCryptoRand()

	for range 10000 {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		if code[0] == '0' {
			t.Fatalf("code %q has leading zero", code)
		}

		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code = %d, want within [100000, 999999]", n)
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	g := NewCryptoRand()

	seen := make(map[string]bool)
	for range 100 {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 50 {
		t.Errorf("distinct codes in 100 draws = %d, want at least 50", len(seen))
	}
}
