// Package id generates short random identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	Base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// ReportCodeAlphabet avoids mixed case so codes can be read out over the phone.
	ReportCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	DefaultLength    = 12
	ReportCodeLength = 6
)

// Generate creates a cryptographically random Base62 string of the given length.
func Generate(length int) (string, error) {
	return GenerateFrom(Base62Alphabet, length)
}

// GenerateFrom creates a cryptographically random string drawn from alphabet.
func GenerateFrom(alphabet string, length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	if alphabet == "" {
		return "", fmt.Errorf("alphabet cannot be empty")
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewReportCode returns a code in the form "PREFIX-XXXXXX".
func NewReportCode(prefix string) (string, error) {
	body, err := GenerateFrom(ReportCodeAlphabet, ReportCodeLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, body), nil
}
