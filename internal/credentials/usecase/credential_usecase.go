package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	cryptoUseCase "github.com/allisson/passvault/internal/crypto/usecase"
	"github.com/allisson/passvault/internal/database"
)

const revealReason = "Reveal the stored password"

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	txManager     database.TxManager
	repo          CredentialRepository
	vault         cryptoUseCase.VaultUseCase
	authenticator Authenticator
	policy        cryptoDomain.AuthPolicy
	logger        *slog.Logger
}

// Create seals the password first so that a key failure never leaves a half-written row.
func (c *credentialUseCase) Create(
	ctx context.Context,
	input credentialsDomain.CreateCredentialInput,
) (*credentialsDomain.Credential, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sealed, err := c.vault.Seal(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	credential := &credentialsDomain.Credential{
		AccountType: input.AccountType,
		Username:    input.Username,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	credential.SetSealed(sealed)

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.repo.Create(txCtx, credential)
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

// Update applies the non-empty fields of input to the stored credential.
func (c *credentialUseCase) Update(
	ctx context.Context,
	input credentialsDomain.UpdateCredentialInput,
) (*credentialsDomain.Credential, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var credential *credentialsDomain.Credential
	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := c.repo.Get(txCtx, input.ID)
		if err != nil {
			return err
		}

		if input.AccountType != "" {
			existing.AccountType = input.AccountType
		}
		if input.Username != "" {
			existing.Username = input.Username
		}
		if input.Password != nil {
			sealed, err := c.vault.Seal(txCtx, input.Password)
			if err != nil {
				return err
			}
			existing.SetSealed(sealed)
		}
		existing.UpdatedAt = time.Now().UTC()

		if err := c.repo.Update(txCtx, existing); err != nil {
			return err
		}
		credential = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

// Get loads the credential, authenticates the user when required and opens the password.
func (c *credentialUseCase) Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error) {
	credential, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}

	password, err := c.vault.Open(ctx, credential.Sealed())
	if err != nil {
		return nil, err
	}
	credential.Password = password

	return credential, nil
}

// List returns a page of credentials.
func (c *credentialUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	return c.repo.List(ctx, offset, limit)
}

// Delete removes a credential by id.
func (c *credentialUseCase) Delete(ctx context.Context, id int64) error {
	return c.repo.Delete(ctx, id)
}

// Recover replaces the vault key. Records sealed under the old key are kept so the
// user can see which accounts need their password re-entered.
func (c *credentialUseCase) Recover(ctx context.Context) (int64, error) {
	if err := c.vault.Recover(ctx); err != nil {
		return 0, err
	}

	count, err := c.repo.Count(ctx)
	if err != nil {
		return 0, err
	}

	c.logger.Warn("stored credentials are no longer readable",
		slog.Int64("credentials", count),
	)
	return count, nil
}

func (c *credentialUseCase) authenticate(ctx context.Context) error {
	if !c.policy.RequiresUserAuth() {
		return nil
	}
	if c.authenticator == nil {
		return credentialsDomain.ErrUserAuthRequired
	}
	if err := c.authenticator.Authenticate(ctx, revealReason); err != nil {
		return fmt.Errorf("%w: %w", credentialsDomain.ErrUserAuthRequired, err)
	}
	return nil
}

// NewCredentialUseCase creates a new CredentialUseCase.
//
// authenticator may be nil when policy does not require user authentication.
func NewCredentialUseCase(
	txManager database.TxManager,
	repo CredentialRepository,
	vault cryptoUseCase.VaultUseCase,
	authenticator Authenticator,
	policy cryptoDomain.AuthPolicy,
	logger *slog.Logger,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:     txManager,
		repo:          repo,
		vault:         vault,
		authenticator: authenticator,
		policy:        policy,
		logger:        logger,
	}
}
