package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	credentialsService "github.com/allisson/passvault/internal/credentials/service"
	credentialsUseCase "github.com/allisson/passvault/internal/credentials/usecase"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// credentialOutput is the JSON shape of a credential. Password is only set by get.
type credentialOutput struct {
	ID          int64     `json:"id"`
	AccountType string    `json:"account_type"`
	Username    string    `json:"username"`
	Password    string    `json:"password,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toOutput(c *credentialsDomain.Credential) credentialOutput {
	return credentialOutput{
		ID:          c.ID,
		AccountType: c.AccountType,
		Username:    c.Username,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// AddCredentialParams holds the flags of the add command.
type AddCredentialParams struct {
	AccountType string
	Username    string
	Generate    bool // Generate a random password instead of prompting
	Length      int  // Length of the generated password
	Format      string
}

// RunAddCredential stores a new credential. The password is prompted for, or
// generated and shown once when Generate is set.
func RunAddCredential(
	ctx context.Context,
	credentialUseCase credentialsUseCase.CredentialUseCase,
	generator credentialsService.PasswordGenerator,
	logger *slog.Logger,
	io IOTuple,
	params AddCredentialParams,
) error {
	if err := validateFormat(params.Format); err != nil {
		return err
	}

	var password []byte
	var err error
	if params.Generate {
		password, err = generator.Generate(params.Length)
	} else {
		password, err = newPrompter(io).secret("Password: ")
	}
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(password)

	credential, err := credentialUseCase.Create(ctx, credentialsDomain.CreateCredentialInput{
		AccountType: params.AccountType,
		Username:    params.Username,
		Password:    password,
	})
	if err != nil {
		return fmt.Errorf("failed to add credential: %w", err)
	}

	logger.Info("credential added", slog.Int64("id", credential.ID))

	output := toOutput(credential)
	if params.Generate {
		output.Password = string(password)
	}
	if params.Format == "json" {
		return writeJSON(io.Writer, output)
	}

	_, _ = fmt.Fprintf(io.Writer, "Credential %d added\n", credential.ID)
	if params.Generate {
		_, _ = fmt.Fprintf(io.Writer, "Generated password: %s\n", output.Password)
	}
	return nil
}

// RunGetCredential reveals a stored credential.
func RunGetCredential(
	ctx context.Context,
	credentialUseCase credentialsUseCase.CredentialUseCase,
	writer io.Writer,
	id int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	credential, err := credentialUseCase.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get credential %d: %w", id, err)
	}
	defer cryptoDomain.Zero(credential.Password)

	output := toOutput(credential)
	output.Password = string(credential.Password)
	if format == "json" {
		return writeJSON(writer, output)
	}

	_, _ = fmt.Fprintf(writer, "Account:  %s\n", output.AccountType)
	_, _ = fmt.Fprintf(writer, "Username: %s\n", output.Username)
	_, _ = fmt.Fprintf(writer, "Password: %s\n", output.Password)
	return nil
}

// RunListCredentials lists stored credentials, newest first, without revealing passwords.
func RunListCredentials(
	ctx context.Context,
	credentialUseCase credentialsUseCase.CredentialUseCase,
	writer io.Writer,
	offset, limit int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	credentials, err := credentialUseCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	if format == "json" {
		outputs := make([]credentialOutput, 0, len(credentials))
		for _, c := range credentials {
			outputs = append(outputs, toOutput(c))
		}
		return writeJSON(writer, outputs)
	}

	if len(credentials) == 0 {
		_, _ = fmt.Fprintln(writer, "No credentials stored")
		return nil
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tACCOUNT\tUSERNAME\tUPDATED")
	for _, c := range credentials {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.AccountType, c.Username, c.UpdatedAt.Format(time.DateTime))
	}
	return tw.Flush()
}

// UpdateCredentialParams holds the flags of the update command.
type UpdateCredentialParams struct {
	ID          int64
	AccountType string
	Username    string
	Password    bool // Prompt for a new password
	Generate    bool // Generate a new random password
	Length      int
}

// RunUpdateCredential changes the labels and/or the password of a credential.
func RunUpdateCredential(
	ctx context.Context,
	credentialUseCase credentialsUseCase.CredentialUseCase,
	generator credentialsService.PasswordGenerator,
	logger *slog.Logger,
	io IOTuple,
	params UpdateCredentialParams,
) error {
	input := credentialsDomain.UpdateCredentialInput{
		ID:          params.ID,
		AccountType: params.AccountType,
		Username:    params.Username,
	}

	var err error
	switch {
	case params.Generate:
		input.Password, err = generator.Generate(params.Length)
	case params.Password:
		input.Password, err = newPrompter(io).secret("New password: ")
	}
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(input.Password)

	if _, err := credentialUseCase.Update(ctx, input); err != nil {
		return fmt.Errorf("failed to update credential %d: %w", params.ID, err)
	}

	logger.Info("credential updated", slog.Int64("id", params.ID))
	_, _ = fmt.Fprintf(io.Writer, "Credential %d updated\n", params.ID)
	if params.Generate {
		_, _ = fmt.Fprintf(io.Writer, "Generated password: %s\n", input.Password)
	}
	return nil
}

// RunDeleteCredential deletes a credential after confirmation unless force is set.
func RunDeleteCredential(
	ctx context.Context,
	credentialUseCase credentialsUseCase.CredentialUseCase,
	logger *slog.Logger,
	io IOTuple,
	id int64,
	force bool,
) error {
	if !force {
		ok, err := newPrompter(io).confirm(fmt.Sprintf("Delete credential %d?", id))
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	if err := credentialUseCase.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete credential %d: %w", id, err)
	}

	logger.Info("credential deleted", slog.Int64("id", id))
	_, _ = fmt.Fprintf(io.Writer, "Credential %d deleted\n", id)
	return nil
}

// RunGeneratePassword prints a random password without storing it.
func RunGeneratePassword(
	generator credentialsService.PasswordGenerator,
	writer io.Writer,
	length int,
) error {
	password, err := generator.Generate(length)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(password)

	_, err = fmt.Fprintln(writer, string(password))
	return err
}
