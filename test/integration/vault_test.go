// Package integration provides end-to-end tests of the credential vault wired
// through the application container against a real SQLite database.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/passvault/internal/app"
	"github.com/allisson/passvault/internal/config"
	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	credentialsUseCase "github.com/allisson/passvault/internal/credentials/usecase"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/crypto/keystore"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// vaultTestContext holds the wired application and the store backing its key.
type vaultTestContext struct {
	container   *app.Container
	store       *keystore.MemoryStore
	db          *sql.DB
	credentials credentialsUseCase.CredentialUseCase
}

func setupVault(t *testing.T) *vaultTestContext {
	t.Helper()

	cfg := &config.Config{
		LogLevel:           "error",
		DBDriver:           database.DriverSQLite,
		DBConnectionString: filepath.Join(t.TempDir(), "passvault.db"),
		KeyAlias:           cryptoDomain.DefaultKeyAlias,
		KeyAlgorithm:       string(cryptoDomain.AESGCM),
		KeyAuthPolicy:      string(cryptoDomain.PolicyNone),
		KeystoreBackend:    config.KeystoreMemory,
		MetricsNamespace:   "passvault",
	}

	store := keystore.NewMemoryStore()
	container := app.NewContainer(cfg, app.WithSecureStore(store))
	t.Cleanup(func() {
		assert.NoError(t, container.Shutdown(context.Background()))
	})

	db, err := container.DB()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg.DBDriver))

	credentials, err := container.CredentialUseCase()
	require.NoError(t, err)

	return &vaultTestContext{
		container:   container,
		store:       store,
		db:          db,
		credentials: credentials,
	}
}

func (v *vaultTestContext) add(t *testing.T, username, password string) *credentialsDomain.Credential {
	t.Helper()
	credential, err := v.credentials.Create(context.Background(), credentialsDomain.CreateCredentialInput{
		AccountType: "email",
		Username:    username,
		Password:    []byte(password),
	})
	require.NoError(t, err)
	return credential
}

func (v *vaultTestContext) state(t *testing.T) cryptoDomain.VaultState {
	t.Helper()
	vault, err := v.container.VaultUseCase()
	require.NoError(t, err)
	return vault.State()
}

func TestIntegration_RoundTrip(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	assert.Equal(t, cryptoDomain.StateNoKey, v.state(t))

	credential := v.add(t, "alice@example.com", "hunter2")
	assert.Equal(t, cryptoDomain.StateKeyReady, v.state(t))
	assert.Equal(t, 1, v.store.Generated())

	var ciphertext, nonce []byte
	err := v.db.QueryRowContext(ctx, "SELECT ciphertext, nonce FROM credentials WHERE id = ?", credential.ID).
		Scan(&ciphertext, &nonce)
	require.NoError(t, err)
	assert.Len(t, nonce, cryptoDomain.NonceSize)
	assert.Len(t, ciphertext, len("hunter2")+16)
	assert.NotContains(t, string(ciphertext), "hunter2")

	got, err := v.credentials.Get(ctx, credential.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), got.Password)
	assert.Equal(t, "alice@example.com", got.Username)

	// A second credential reuses the key and gets a fresh nonce.
	other := v.add(t, "bob@example.com", "hunter2")
	assert.Equal(t, 1, v.store.Generated())
	assert.NotEqual(t, credential.Nonce, other.Nonce)
	assert.NotEqual(t, credential.Ciphertext, other.Ciphertext)
}

func TestIntegration_EmptyPassword(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	_, err := v.credentials.Create(ctx, credentialsDomain.CreateCredentialInput{
		AccountType: "email",
		Username:    "alice",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 0, v.store.Generated())

	// The vault itself accepts empty plaintext.
	vault, err := v.container.VaultUseCase()
	require.NoError(t, err)
	sealed, err := vault.Seal(ctx, []byte{})
	require.NoError(t, err)
	assert.Len(t, sealed.Ciphertext, 16)

	plaintext, err := vault.Open(ctx, sealed)
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestIntegration_TamperedCiphertext(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	tampered := v.add(t, "alice", "hunter2")
	intact := v.add(t, "bob", "correct horse")

	ciphertext := append([]byte(nil), tampered.Ciphertext...)
	ciphertext[0] ^= 0x01
	_, err := v.db.ExecContext(ctx, "UPDATE credentials SET ciphertext = ? WHERE id = ?", ciphertext, tampered.ID)
	require.NoError(t, err)

	got, err := v.credentials.Get(ctx, tampered.ID)
	assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	assert.Nil(t, got)

	// A corrupted record does not break the key.
	assert.Equal(t, cryptoDomain.StateKeyReady, v.state(t))
	got, err = v.credentials.Get(ctx, intact.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("correct horse"), got.Password)
}

func TestIntegration_SwappedNonce(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	first := v.add(t, "alice", "hunter2")
	second := v.add(t, "bob", "hunter2")

	_, err := v.db.ExecContext(ctx, "UPDATE credentials SET nonce = ? WHERE id = ?", second.Nonce, first.ID)
	require.NoError(t, err)

	_, err = v.credentials.Get(ctx, first.ID)
	assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
}

func TestIntegration_KeyLossAndRecovery(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	lost := v.add(t, "alice", "hunter2")

	// The key disappears behind the application's back.
	require.NoError(t, v.store.Delete(ctx, cryptoDomain.DefaultKeyAlias))

	_, err := v.credentials.Get(ctx, lost.ID)
	assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
	assert.Equal(t, cryptoDomain.StateKeyBroken, v.state(t))

	// No silent regeneration while broken.
	_, err = v.credentials.Create(ctx, credentialsDomain.CreateCredentialInput{
		AccountType: "email",
		Username:    "bob",
		Password:    []byte("secret"),
	})
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyBroken)
	assert.Equal(t, 1, v.store.Generated())

	unreadable, err := v.credentials.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unreadable)
	assert.Equal(t, cryptoDomain.StateKeyReady, v.state(t))
	assert.Equal(t, 2, v.store.Generated())

	// Secrets sealed under the old key stay unreadable.
	_, err = v.credentials.Get(ctx, lost.ID)
	assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)

	// Resetting the password makes the record usable again.
	_, err = v.credentials.Update(ctx, credentialsDomain.UpdateCredentialInput{
		ID:       lost.ID,
		Password: []byte("hunter3"),
	})
	require.NoError(t, err)
	got, err := v.credentials.Get(ctx, lost.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter3"), got.Password)
}

func TestIntegration_CorruptedKey(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	credential := v.add(t, "alice", "hunter2")
	v.store.Corrupt(cryptoDomain.DefaultKeyAlias)

	_, err := v.credentials.Get(ctx, credential.ID)
	assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyUnreadable)
	assert.Equal(t, cryptoDomain.StateKeyBroken, v.state(t))

	_, err = v.credentials.Recover(ctx)
	require.NoError(t, err)

	fresh := v.add(t, "bob", "correct horse")
	got, err := v.credentials.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("correct horse"), got.Password)
}

func TestIntegration_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	credential := v.add(t, "alice", "hunter2")
	v.store.SetUnavailable(true)

	_, err := v.credentials.Get(ctx, credential.ID)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyStoreUnavailable)

	var count int
	require.NoError(t, v.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM credentials").Scan(&count))

	_, err = v.credentials.Create(ctx, credentialsDomain.CreateCredentialInput{
		AccountType: "email",
		Username:    "bob",
		Password:    []byte("secret"),
	})
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyStoreUnavailable)

	var after int
	require.NoError(t, v.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM credentials").Scan(&after))
	assert.Equal(t, count, after)

	// An unavailable store is not a broken key.
	v.store.SetUnavailable(false)
	assert.NotEqual(t, cryptoDomain.StateKeyBroken, v.state(t))
	got, err := v.credentials.Get(ctx, credential.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), got.Password)
}

func TestIntegration_KeyLossDetectedOnCreate(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	lost := v.add(t, "alice", "hunter2")
	require.NoError(t, v.store.Delete(ctx, cryptoDomain.DefaultKeyAlias))

	_, err := v.credentials.Create(ctx, credentialsDomain.CreateCredentialInput{
		AccountType: "email",
		Username:    "bob",
		Password:    []byte("secret"),
	})
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
	assert.Equal(t, cryptoDomain.StateKeyBroken, v.state(t))
	assert.Equal(t, 1, v.store.Generated())

	_, err = v.credentials.Get(ctx, lost.ID)
	assert.ErrorIs(t, err, cryptoDomain.ErrKeyBroken)
}

func TestIntegration_ConcurrentSealsShareOneKey(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	vault, err := v.container.VaultUseCase()
	require.NoError(t, err)

	sealed := make([]cryptoDomain.SealedSecret, 16)
	var g errgroup.Group
	for i := range sealed {
		g.Go(func() error {
			s, err := vault.Seal(ctx, []byte(fmt.Sprintf("password-%d", i)))
			sealed[i] = s
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 1, v.store.Generated())

	for i, s := range sealed {
		plaintext, err := vault.Open(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("password-%d", i), string(plaintext))
	}
}

func TestIntegration_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	v := setupVault(t)

	first := v.add(t, "alice", "one")
	second := v.add(t, "bob", "two")

	list, err := v.credentials.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Nil(t, list[0].Password)

	require.NoError(t, v.credentials.Delete(ctx, first.ID))
	_, err = v.credentials.Get(ctx, first.ID)
	assert.ErrorIs(t, err, credentialsDomain.ErrCredentialNotFound)

	err = v.credentials.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, credentialsDomain.ErrCredentialNotFound)
}
