package domain

import (
	"time"

	"github.com/google/uuid"
)

// WrappedKey is a key whose material has been encrypted by an external KMS keeper.
// It is the persisted form used by the KMS-backed secure store.
type WrappedKey struct {
	ID         uuid.UUID  // Identifier assigned at generation (UUIDv7)
	Alias      string     // Unique alias, one row per alias
	Algorithm  Algorithm  // AEAD algorithm the key is bound to
	Policy     AuthPolicy // Authentication policy recorded at generation
	WrappedKey []byte     // Key material encrypted by the KMS keeper
	CreatedAt  time.Time
}
