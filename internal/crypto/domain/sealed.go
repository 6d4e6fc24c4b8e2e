package domain

// SealedSecret is the output of encryption and the input to decryption.
//
// Ciphertext carries the authentication tag appended by the AEAD mode and Nonce is
// the value drawn for that single encryption. Both are opaque to every layer other
// than the authenticated cipher and must be stored and returned byte-exact.
type SealedSecret struct {
	Ciphertext []byte
	Nonce      []byte
}

// IsZero reports whether the sealed secret carries no data at all.
func (s SealedSecret) IsZero() bool {
	return len(s.Ciphertext) == 0 && len(s.Nonce) == 0
}
