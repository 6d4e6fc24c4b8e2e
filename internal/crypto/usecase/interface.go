// Package usecase implements the credential vault: the orchestration of the key
// manager and the authenticated cipher into seal, open and explicit recovery.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// VaultUseCase seals and opens secrets under the single named key.
//
// The vault tracks key availability as NoKey, KeyReady or KeyBroken. A broken key
// is never replaced implicitly: Seal and Open fail with ErrKeyBroken until the
// caller invokes Recover, which destroys every secret sealed under the old key.
type VaultUseCase interface {
	// Seal encrypts plaintext, creating the key on first use.
	Seal(ctx context.Context, plaintext []byte) (cryptoDomain.SealedSecret, error)

	// Open decrypts a sealed secret. It never creates a key.
	Open(ctx context.Context, sealed cryptoDomain.SealedSecret) ([]byte, error)

	// Recover deletes the current key and generates a fresh one.
	Recover(ctx context.Context) error

	// State returns the current key availability state.
	State() cryptoDomain.VaultState
}
