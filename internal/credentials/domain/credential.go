// Package domain defines the credential records stored by the password vault.
//
// A credential pairs an account label and username with a password that is only
// ever persisted sealed. The vault core never reads the label or username.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	appValidation "github.com/allisson/passvault/internal/validation"
)

// Field limits enforced on input.
const (
	MaxLabelLength    = 255
	MaxPasswordLength = 4096
)

// Credential is a stored account credential.
type Credential struct {
	// ID is the autoincrement row identifier.
	ID int64
	// AccountType labels the account (e.g. "email", "bank").
	AccountType string
	// Username identifies the account holder (username or email address).
	Username string
	// Ciphertext is the sealed password with the authentication tag appended.
	Ciphertext []byte
	// Nonce is the value used when the password was sealed.
	Nonce []byte
	// Password holds the opened password in memory only; must be zeroed after use.
	Password []byte `json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sealed returns the stored password as a sealed secret.
func (c *Credential) Sealed() cryptoDomain.SealedSecret {
	return cryptoDomain.SealedSecret{Ciphertext: c.Ciphertext, Nonce: c.Nonce}
}

// SetSealed stores sealed as the credential password.
func (c *Credential) SetSealed(sealed cryptoDomain.SealedSecret) {
	c.Ciphertext = sealed.Ciphertext
	c.Nonce = sealed.Nonce
}

// CreateCredentialInput holds the fields of a new credential.
type CreateCredentialInput struct {
	AccountType string
	Username    string
	Password    []byte
}

// Validate checks the input with jellydator/validation.
func (i CreateCredentialInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.AccountType,
			validation.Required.Error("account type is required"),
			appValidation.NotBlank,
			appValidation.PrintableText,
			validation.Length(1, MaxLabelLength),
		),
		validation.Field(&i.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			appValidation.PrintableText,
			validation.Length(1, MaxLabelLength),
		),
		validation.Field(&i.Password, appValidation.SecretBytes(MaxPasswordLength)),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateCredentialInput holds the fields to change on an existing credential.
// Empty labels and a nil password keep the stored values.
type UpdateCredentialInput struct {
	ID          int64
	AccountType string
	Username    string
	Password    []byte
}

// Validate checks the input with jellydator/validation.
func (i UpdateCredentialInput) Validate() error {
	rules := []*validation.FieldRules{
		validation.Field(&i.ID, validation.Required.Error("id is required"), validation.Min(int64(1))),
		validation.Field(&i.AccountType,
			appValidation.PrintableText,
			validation.Length(1, MaxLabelLength),
		),
		validation.Field(&i.Username,
			appValidation.NoWhitespace,
			appValidation.PrintableText,
			validation.Length(1, MaxLabelLength),
		),
	}
	if i.Password != nil {
		rules = append(rules, validation.Field(&i.Password, appValidation.SecretBytes(MaxPasswordLength)))
	}

	if err := validation.ValidateStruct(&i, rules...); err != nil {
		return appValidation.WrapValidationError(err)
	}
	if i.AccountType == "" && i.Username == "" && i.Password == nil {
		return appValidation.WrapValidationError(validation.NewError("validation_update_empty", "nothing to update"))
	}
	return nil
}
