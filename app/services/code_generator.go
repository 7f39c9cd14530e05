// Package services provides external service integrations and technical concerns for the application
package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// CodeGenerator produces random strings of a given length drawn from a charset
type CodeGenerator interface {
	Generate(charset string, length int) (string, error)
}

type RandomCodeGenerator struct{}

// NewRandomCodeGenerator creates a generator backed by crypto/rand
func NewRandomCodeGenerator() CodeGenerator {
	return &RandomCodeGenerator{}
}

// Generate returns a random string of the requested length. The result is
// normalized to uppercase regardless of the charset's casing.
func (g *RandomCodeGenerator) Generate(charset string, length int) (string, error) {
	if charset == "" {
		return "", errors.New("charset is empty")
	}
	if length <= 0 {
		return "", errors.New("length must be positive")
	}

	charsetLen := big.NewInt(int64(len(charset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return strings.ToUpper(string(b)), nil
}
