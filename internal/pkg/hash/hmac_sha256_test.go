package hash

import "testing"

func TestHMACSHA256RoundTrip(t *testing.T) {
	h := NewHMACSHA256("test-secret")

	hashed, err := h.Hash("428913")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !h.Verify(string(hashed), "428913") {
		t.Error("Verify() = false for matching input, want true")
	}
	if h.Verify(string(hashed), "428914") {
		t.Error("Verify() = true for a different input, want false")
	}
	if h.Verify(string(hashed[:len(hashed)-1])+"x", "428913") {
		t.Error("Verify() = true for a tampered hash, want false")
	}
}

func TestHMACSHA256Deterministic(t *testing.T) {
	h := NewHMACSHA256("test-secret")

	a, _ := h.Hash("hello")
	b, _ := h.Hash("hello")
	if string(a) != string(b) {
		t.Errorf("Hash() not deterministic: %s != %s", a, b)
	}
}

func TestHMACSHA256KeyMatters(t *testing.T) {
	hashed, _ := NewHMACSHA256("key-one").Hash("428913")

	if NewHMACSHA256("key-two").Verify(string(hashed), "428913") {
		t.Error("Verify() = true under a different key, want false")
	}
}
