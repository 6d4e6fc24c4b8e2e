package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"

	credentialsUseCase "github.com/allisson/passvault/internal/credentials/usecase"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	cryptoService "github.com/allisson/passvault/internal/crypto/service"
)

var warn = color.New(color.FgYellow, color.Bold)

// keyStatus is the JSON shape of the key status output.
type keyStatus struct {
	Alias     string     `json:"alias"`
	Algorithm string     `json:"algorithm"`
	Policy    string     `json:"policy"`
	Present   bool       `json:"present"`
	Readable  bool       `json:"readable"`
	KeyID     string     `json:"key_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// RunKeyStatus reports whether the vault key exists and can be read. It never creates the key.
func RunKeyStatus(
	ctx context.Context,
	keyManager cryptoService.KeyManager,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	spec := keyManager.Spec()
	status := keyStatus{
		Alias:     spec.Alias,
		Algorithm: string(spec.Algorithm),
		Policy:    string(spec.Policy),
	}

	handle, err := keyManager.Key(ctx)
	switch {
	case err == nil:
		status.Present = true
		status.Readable = true
		status.KeyID = handle.ID().String()
		createdAt := handle.CreatedAt()
		status.CreatedAt = &createdAt
		status.Algorithm = string(handle.Algorithm())
		status.Policy = string(handle.Policy())
		handle.Destroy()
	case errors.Is(err, cryptoDomain.ErrKeyNotFound):
	case errors.Is(err, cryptoDomain.ErrKeyUnreadable):
		status.Present = true
	default:
		return fmt.Errorf("failed to read key status: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, status)
	}

	_, _ = fmt.Fprintf(writer, "Alias:     %s\n", status.Alias)
	_, _ = fmt.Fprintf(writer, "Algorithm: %s\n", status.Algorithm)
	_, _ = fmt.Fprintf(writer, "Policy:    %s\n", status.Policy)
	switch {
	case status.Readable:
		_, _ = fmt.Fprintf(writer, "State:     ready\n")
		_, _ = fmt.Fprintf(writer, "Key ID:    %s\n", status.KeyID)
		_, _ = fmt.Fprintf(writer, "Created:   %s\n", status.CreatedAt.Format(time.RFC3339))
	case status.Present:
		_, _ = fmt.Fprintf(writer, "State:     broken\n")
		_, _ = warn.Fprintln(writer, "The key exists but cannot be read. Run 'key recover' to replace it.")
	default:
		_, _ = fmt.Fprintf(writer, "State:     no key\n")
	}
	return nil
}

// RunKeyEnsure creates the vault key when it does not exist yet.
func RunKeyEnsure(
	ctx context.Context,
	keyManager cryptoService.KeyManager,
	logger *slog.Logger,
	writer io.Writer,
) error {
	handle, err := keyManager.EnsureKey(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure key: %w", err)
	}
	defer handle.Destroy()

	logger.Info("vault key available",
		slog.String("alias", handle.Alias()),
		slog.String("key_id", handle.ID().String()),
	)
	_, _ = fmt.Fprintf(writer, "Key %q is ready (id %s)\n", handle.Alias(), handle.ID())
	return nil
}

// RunKeyDelete removes the vault key. Every stored password becomes unreadable,
// so the user must confirm unless force is set.
func RunKeyDelete(
	ctx context.Context,
	keyManager cryptoService.KeyManager,
	logger *slog.Logger,
	io IOTuple,
	force bool,
) error {
	alias := keyManager.Spec().Alias
	if !force {
		_, _ = warn.Fprintf(io.Writer, "Deleting key %q makes every stored password unreadable.\n", alias)
		ok, err := newPrompter(io).confirm("Delete the key?")
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	if err := keyManager.DeleteKey(ctx); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	logger.Warn("vault key deleted", slog.String("alias", alias))
	_, _ = fmt.Fprintf(io.Writer, "Key %q deleted\n", alias)
	return nil
}

// RunKeyRecover replaces a broken or lost key with a fresh one and reports how
// many stored credentials must be re-entered.
func RunKeyRecover(
	ctx context.Context,
	credentialUseCase credentialsUseCase.CredentialUseCase,
	logger *slog.Logger,
	io IOTuple,
	force bool,
) error {
	if !force {
		_, _ = warn.Fprintln(io.Writer, "Recovery replaces the vault key. Passwords stored under the old key are lost.")
		ok, err := newPrompter(io).confirm("Replace the key?")
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	unreadable, err := credentialUseCase.Recover(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover key: %w", err)
	}

	logger.Info("vault key recovered", slog.Int64("unreadable_credentials", unreadable))
	_, _ = fmt.Fprintln(io.Writer, "A new key has been generated.")
	if unreadable > 0 {
		_, _ = warn.Fprintf(
			io.Writer,
			"%d stored credential(s) can no longer be opened. Use 'update --id <id>' to set a new password.\n",
			unreadable,
		)
	}
	return nil
}
