package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialsMocks "github.com/allisson/passvault/internal/credentials/usecase/mocks"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	cryptoMocks "github.com/allisson/passvault/internal/crypto/service/mocks"
)

var testSpec = cryptoDomain.KeySpec{
	Alias:     cryptoDomain.DefaultKeyAlias,
	Algorithm: cryptoDomain.AESGCM,
	Policy:    cryptoDomain.PolicyUserPresence,
}

func TestRunKeyStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("ready json", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		handle := newTestHandle(t)
		keyManager.On("Spec").Return(testSpec).Once()
		keyManager.On("Key", ctx).Return(handle, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunKeyStatus(ctx, keyManager, &out, "json"))

		var status keyStatus
		require.NoError(t, json.Unmarshal(out.Bytes(), &status))
		assert.True(t, status.Present)
		assert.True(t, status.Readable)
		assert.Equal(t, handle.ID().String(), status.KeyID)
		assert.Equal(t, "user-presence", status.Policy)
	})

	t.Run("no key", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		keyManager.On("Spec").Return(testSpec).Once()
		keyManager.On("Key", ctx).Return(nil, cryptoDomain.ErrKeyNotFound).Once()

		var out bytes.Buffer
		require.NoError(t, RunKeyStatus(ctx, keyManager, &out, "text"))
		assert.Contains(t, out.String(), "no key")
		assert.Contains(t, out.String(), cryptoDomain.DefaultKeyAlias)
	})

	t.Run("broken key", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		keyManager.On("Spec").Return(testSpec).Once()
		keyManager.On("Key", ctx).Return(nil, cryptoDomain.ErrKeyUnreadable).Once()

		var out bytes.Buffer
		require.NoError(t, RunKeyStatus(ctx, keyManager, &out, "text"))
		assert.Contains(t, out.String(), "broken")
		assert.Contains(t, out.String(), "key recover")
	})

	t.Run("store unavailable", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		keyManager.On("Spec").Return(testSpec).Once()
		keyManager.On("Key", ctx).Return(nil, cryptoDomain.ErrKeyStoreUnavailable).Once()

		err := RunKeyStatus(ctx, keyManager, &bytes.Buffer{}, "text")
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyStoreUnavailable)
	})

	t.Run("invalid format", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)

		err := RunKeyStatus(ctx, keyManager, &bytes.Buffer{}, "xml")
		assert.ErrorContains(t, err, "invalid format")
	})
}

func TestRunKeyEnsure(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		handle := newTestHandle(t)
		keyManager.On("EnsureKey", ctx).Return(handle, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunKeyEnsure(ctx, keyManager, discardLogger(), &out))
		assert.Contains(t, out.String(), handle.ID().String())
	})

	t.Run("policy rejected", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		keyManager.On("EnsureKey", ctx).Return(nil, cryptoDomain.ErrKeyGenerationFailed).Once()

		err := RunKeyEnsure(ctx, keyManager, discardLogger(), &bytes.Buffer{})
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyGenerationFailed)
	})
}

func TestRunKeyDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		keyManager.On("Spec").Return(testSpec).Once()
		keyManager.On("DeleteKey", ctx).Return(nil).Once()
		io, out := newIO("yes\n")

		require.NoError(t, RunKeyDelete(ctx, keyManager, discardLogger(), io, false))
		assert.Contains(t, out.String(), "deleted")
	})

	t.Run("declined", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		keyManager.On("Spec").Return(testSpec).Once()
		io, _ := newIO("n\n")

		err := RunKeyDelete(ctx, keyManager, discardLogger(), io, false)
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("forced", func(t *testing.T) {
		keyManager := cryptoMocks.NewMockKeyManager(t)
		keyManager.On("Spec").Return(testSpec).Once()
		keyManager.On("DeleteKey", ctx).Return(cryptoDomain.ErrKeyStoreUnavailable).Once()
		io, _ := newIO("")

		err := RunKeyDelete(ctx, keyManager, discardLogger(), io, true)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyStoreUnavailable)
	})
}

func TestRunKeyRecover(t *testing.T) {
	ctx := context.Background()

	t.Run("reports unreadable credentials", func(t *testing.T) {
		useCase := credentialsMocks.NewMockCredentialUseCase(t)
		useCase.On("Recover", ctx).Return(int64(3), nil).Once()
		io, out := newIO("y\n")

		require.NoError(t, RunKeyRecover(ctx, useCase, discardLogger(), io, false))
		assert.Contains(t, out.String(), "3 stored credential(s)")
	})

	t.Run("nothing stored", func(t *testing.T) {
		useCase := credentialsMocks.NewMockCredentialUseCase(t)
		useCase.On("Recover", ctx).Return(int64(0), nil).Once()
		io, out := newIO("")

		require.NoError(t, RunKeyRecover(ctx, useCase, discardLogger(), io, true))
		assert.NotContains(t, out.String(), "can no longer be opened")
	})

	t.Run("declined", func(t *testing.T) {
		useCase := credentialsMocks.NewMockCredentialUseCase(t)
		io, _ := newIO("\n")

		err := RunKeyRecover(ctx, useCase, discardLogger(), io, false)
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("failure", func(t *testing.T) {
		useCase := credentialsMocks.NewMockCredentialUseCase(t)
		storeErr := errors.New("keychain locked")
		useCase.On("Recover", ctx).Return(int64(0), storeErr).Once()
		io, _ := newIO("")

		err := RunKeyRecover(ctx, useCase, discardLogger(), io, true)
		assert.ErrorIs(t, err, storeErr)
	})
}
