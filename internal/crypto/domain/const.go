package domain

import "fmt"

// Algorithm represents the authenticated encryption algorithm bound to a key.
//
// Both supported algorithms are AEAD constructions with a 256-bit key, a 96-bit
// nonce and a 128-bit authentication tag appended to the ciphertext, so a
// SealedSecret has the same shape regardless of the algorithm.
type Algorithm string

const (
	// AESGCM represents AES-256 in Galois/Counter Mode.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305, preferred on hardware without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the symmetric key length in bytes (256 bits).
	KeySize = 32
	// NonceSize is the nonce length in bytes (96 bits).
	NonceSize = 12
	// TagSize is the authentication tag length in bytes (128 bits).
	TagSize = 16

	// DefaultKeyAlias is the secure store alias used when none is configured.
	DefaultKeyAlias = "PasswordManagerKey"
)

// ParseAlgorithm converts a configuration string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", fmt.Errorf(
			"%w: %q (valid options: aes-gcm, chacha20-poly1305)",
			ErrUnsupportedAlgorithm,
			s,
		)
	}
}
