package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	cryptoService "github.com/allisson/passvault/internal/crypto/service"
)

// vaultUseCase implements VaultUseCase.
//
// Every Seal and Open resolves a fresh key handle and destroys it before
// returning, so a key deleted or replaced by another process is noticed on the
// next call. opMu lets seals and opens run concurrently while Recover runs alone.
type vaultUseCase struct {
	keyManager cryptoService.KeyManager
	cipher     cryptoService.AuthenticatedCipher
	logger     *slog.Logger

	opMu    sync.RWMutex
	stateMu sync.Mutex
	state   cryptoDomain.VaultState
}

// Seal encrypts plaintext under the named key.
//
// Only NoKey may generate the key. Once KeyReady, the key is resolved without
// generation, so a key lost behind the vault's back moves it to KeyBroken instead
// of being replaced. Key generation and store failures are surfaced unchanged and
// leave the state as it was.
func (v *vaultUseCase) Seal(ctx context.Context, plaintext []byte) (cryptoDomain.SealedSecret, error) {
	v.opMu.RLock()
	defer v.opMu.RUnlock()

	var handle *cryptoDomain.KeyHandle
	var err error
	switch v.State() {
	case cryptoDomain.StateKeyBroken:
		return cryptoDomain.SealedSecret{}, cryptoDomain.ErrKeyBroken
	case cryptoDomain.StateNoKey:
		handle, err = v.keyManager.EnsureKey(ctx)
	default:
		handle, err = v.keyManager.Key(ctx)
	}
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrKeyNotFound) || errors.Is(err, cryptoDomain.ErrKeyUnreadable) {
			v.markBroken("seal", err)
		}
		return cryptoDomain.SealedSecret{}, err
	}
	defer handle.Destroy()

	sealed, err := v.cipher.Encrypt(handle, plaintext)
	if err != nil {
		return cryptoDomain.SealedSecret{}, err
	}

	v.setState(cryptoDomain.StateKeyReady)
	return sealed, nil
}

// Open decrypts sealed under the named key.
//
// A missing or unreadable key moves the vault to KeyBroken and the returned error
// matches both ErrAuthenticationFailed and the key error. A tag mismatch with a
// readable key is a per-record integrity failure and leaves the state untouched.
func (v *vaultUseCase) Open(ctx context.Context, sealed cryptoDomain.SealedSecret) ([]byte, error) {
	v.opMu.RLock()
	defer v.opMu.RUnlock()

	if v.State() == cryptoDomain.StateKeyBroken {
		return nil, cryptoDomain.ErrKeyBroken
	}

	handle, err := v.keyManager.Key(ctx)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrKeyNotFound) || errors.Is(err, cryptoDomain.ErrKeyUnreadable) {
			v.markBroken("open", err)
			return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrAuthenticationFailed, err)
		}
		return nil, err
	}
	defer handle.Destroy()

	plaintext, err := v.cipher.Decrypt(handle, sealed)
	if err != nil {
		return nil, err
	}

	v.setState(cryptoDomain.StateKeyReady)
	return plaintext, nil
}

// Recover replaces the named key. Secrets sealed under the previous key can never be opened again.
func (v *vaultUseCase) Recover(ctx context.Context) error {
	v.opMu.Lock()
	defer v.opMu.Unlock()

	if err := v.keyManager.DeleteKey(ctx); err != nil {
		return err
	}

	handle, err := v.keyManager.EnsureKey(ctx)
	if err != nil {
		v.setState(cryptoDomain.StateNoKey)
		return err
	}
	defer handle.Destroy()

	v.setState(cryptoDomain.StateKeyReady)
	v.logger.Warn("vault key recovered, previously sealed secrets are unreadable",
		slog.String("alias", handle.Alias()),
		slog.String("key_id", handle.ID().String()),
	)
	return nil
}

// State returns the current key availability state.
func (v *vaultUseCase) State() cryptoDomain.VaultState {
	v.stateMu.Lock()
	defer v.stateMu.Unlock()
	return v.state
}

func (v *vaultUseCase) setState(state cryptoDomain.VaultState) {
	v.stateMu.Lock()
	defer v.stateMu.Unlock()
	v.state = state
}

func (v *vaultUseCase) markBroken(operation string, cause error) {
	v.setState(cryptoDomain.StateKeyBroken)
	v.logger.Error("vault key broken, explicit recovery required",
		slog.String("operation", operation),
		slog.Any("error", cause),
	)
}

// NewVaultUseCase creates a new VaultUseCase in the NoKey state.
func NewVaultUseCase(
	keyManager cryptoService.KeyManager,
	cipher cryptoService.AuthenticatedCipher,
	logger *slog.Logger,
) VaultUseCase {
	return &vaultUseCase{
		keyManager: keyManager,
		cipher:     cipher,
		logger:     logger,
		state:      cryptoDomain.StateNoKey,
	}
}
