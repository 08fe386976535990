package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator produces one-time verification codes.
type Generator interface {
	RandomCode(length int) (string, error)
}

type secureGenerator struct{}

// NewSecureGenerator returns a Generator backed by crypto/rand. Codes are
// uniform over the full range of n-digit numbers with a non-zero first digit,
// so a 6-digit code is uniform over [100000, 999999].
func NewSecureGenerator() Generator {
	return &secureGenerator{}
}

func (g *secureGenerator) RandomCode(length int) (string, error) {
	if length < 4 || length > 10 {
		return "", fmt.Errorf("unsupported code length %d", length)
	}

	low := pow10(length - 1)
	span := big.NewInt(pow10(length) - low)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("read random failed: %w", err)
	}

	return fmt.Sprintf("%d", n.Int64()+low), nil
}

func pow10(n int) int64 {
	r := int64(1)
	for i := 0; i < n; i++ {
		r *= 10
	}
	return r
}
