// Package otpcode generates random one-time passcodes for out-of-band
// delivery. Codes are drawn uniformly from [100000, 999999], so they are
// always exactly six digits with no leading zero.
package otpcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// Generator produces one-time passcodes.
type Generator interface {
	Generate() (string, error)
}

// CryptoRand implements Generator with crypto/rand.
type CryptoRand struct{}

// NewCryptoRand returns a CryptoRand generator.
func NewCryptoRand() *CryptoRand {
	return &CryptoRand{}
}

// Generate returns a uniformly random six-digit code.
func (*CryptoRand) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
