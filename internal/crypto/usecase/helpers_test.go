package usecase

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

func newHandle(t *testing.T) *cryptoDomain.KeyHandle {
	t.Helper()
	material := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(material)
	require.NoError(t, err)

	handle, err := cryptoDomain.NewKeyHandle(&cryptoDomain.StoredKey{
		ID:        uuid.Must(uuid.NewV7()),
		Alias:     cryptoDomain.DefaultKeyAlias,
		Algorithm: cryptoDomain.AESGCM,
		Policy:    cryptoDomain.PolicyNone,
		Material:  material,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return handle
}
