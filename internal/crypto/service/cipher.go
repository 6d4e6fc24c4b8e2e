package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// AuthenticatedCipherService implements AuthenticatedCipher on top of AEADManager.
//
// Each call opens the handle's key material into a locked buffer, builds the AEAD
// for the handle's algorithm and destroys the buffer before returning. Low-level
// failures are mapped to ErrEncryptionFailed (sealing) and ErrAuthenticationFailed
// (opening) so callers never need to inspect cipher internals.
type AuthenticatedCipherService struct {
	aeadManager AEADManager
}

// NewAuthenticatedCipher creates a new AuthenticatedCipherService.
func NewAuthenticatedCipher(aeadManager AEADManager) *AuthenticatedCipherService {
	return &AuthenticatedCipherService{aeadManager: aeadManager}
}

// Encrypt seals plaintext under handle. A SealedSecret is returned complete or not at all.
func (c *AuthenticatedCipherService) Encrypt(
	handle *cryptoDomain.KeyHandle,
	plaintext []byte,
) (cryptoDomain.SealedSecret, error) {
	aead, err := c.cipherFor(handle)
	if err != nil {
		return cryptoDomain.SealedSecret{}, err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext)
	if err != nil {
		return cryptoDomain.SealedSecret{}, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	return cryptoDomain.SealedSecret{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// Decrypt opens sealed under handle.
//
// Any tag mismatch, wrong nonce length or truncated ciphertext yields
// ErrAuthenticationFailed and a nil plaintext.
func (c *AuthenticatedCipherService) Decrypt(
	handle *cryptoDomain.KeyHandle,
	sealed cryptoDomain.SealedSecret,
) ([]byte, error) {
	aead, err := c.cipherFor(handle)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Decrypt(sealed.Ciphertext, sealed.Nonce)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	return plaintext, nil
}

// cipherFor builds the AEAD for handle. The decrypted key only lives inside this call.
func (c *AuthenticatedCipherService) cipherFor(handle *cryptoDomain.KeyHandle) (AEAD, error) {
	buf, err := handle.Open()
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()

	return c.aeadManager.CreateCipher(buf.Bytes(), handle.Algorithm())
}
