// Package service provides credential helpers that do not touch storage.
package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// PasswordChars is the alphabet random passwords are drawn from.
const PasswordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()"

// DefaultPasswordLength is used when no length is configured.
const DefaultPasswordLength = 12

// ErrInvalidPasswordLength indicates a requested length outside 1..MaxPasswordLength.
var ErrInvalidPasswordLength = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid password length")

// PasswordGenerator generates random passwords.
type PasswordGenerator interface {
	// Generate returns a random password of length characters. The caller should zero it after use.
	Generate(length int) ([]byte, error)
}

type passwordGenerator struct {
	random io.Reader
}

// NewPasswordGenerator creates a generator backed by crypto/rand.
func NewPasswordGenerator() PasswordGenerator {
	return &passwordGenerator{random: rand.Reader}
}

// NewPasswordGeneratorWithReader creates a generator that draws from random.
func NewPasswordGeneratorWithReader(random io.Reader) PasswordGenerator {
	return &passwordGenerator{random: random}
}

// Generate picks each character uniformly with rand.Int, which rejects biased samples.
func (g *passwordGenerator) Generate(length int) ([]byte, error) {
	if length < 1 || length > credentialsDomain.MaxPasswordLength {
		return nil, fmt.Errorf(
			"%w: %d (must be between 1 and %d)",
			ErrInvalidPasswordLength,
			length,
			credentialsDomain.MaxPasswordLength,
		)
	}

	password := make([]byte, length)
	charsLen := big.NewInt(int64(len(PasswordChars)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(g.random, charsLen)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random character: %w", err)
		}
		password[i] = PasswordChars[n.Int64()]
	}

	return password, nil
}
