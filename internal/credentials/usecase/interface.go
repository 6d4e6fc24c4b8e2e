// Package usecase implements credential management on top of the credential vault.
//
// Passwords are sealed before they reach a repository and opened only on Get, after
// the user has been authenticated when the key policy demands it.
package usecase

import (
	"context"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
)

// CredentialRepository defines the interface for credential persistence.
type CredentialRepository interface {
	Create(ctx context.Context, credential *credentialsDomain.Credential) error
	Update(ctx context.Context, credential *credentialsDomain.Credential) error
	Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error)
	List(ctx context.Context, offset, limit int) ([]*credentialsDomain.Credential, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Authenticator confirms the presence of the user before a password is revealed.
//
// Implementations block until the user has answered. A nil error means the user
// was authenticated; reason is shown to the user.
type Authenticator interface {
	Authenticate(ctx context.Context, reason string) error
}

// CredentialUseCase defines the interface for credential business logic.
type CredentialUseCase interface {
	// Create validates the input, seals the password and stores the credential.
	Create(ctx context.Context, input credentialsDomain.CreateCredentialInput) (*credentialsDomain.Credential, error)

	// Update changes the given fields of a credential, resealing the password when one is supplied.
	Update(ctx context.Context, input credentialsDomain.UpdateCredentialInput) (*credentialsDomain.Credential, error)

	// Get returns a credential with its password opened. The caller must zero Password after use.
	Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error)

	// List returns credentials newest first without opening any password.
	List(ctx context.Context, offset, limit int) ([]*credentialsDomain.Credential, error)

	// Delete removes a credential.
	Delete(ctx context.Context, id int64) error

	// Recover replaces the vault key and returns how many stored credentials can no longer be opened.
	Recover(ctx context.Context) (int64, error)
}
