// Package hash provides keyed hashing for secrets held at rest: one-time
// codes in the ledger and signed session cookie values. Plaintext secrets
// never need to be stored, only compared.
package hash

// Hash computes and verifies one-way hashes.
type Hash interface {
	// Hash returns the hash of str.
	Hash(str string) ([]byte, error)
	// Verify reports whether str hashes to hashed.
	Verify(hashed, str string) bool
}
