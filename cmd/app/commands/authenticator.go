package commands

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfirmed is returned by PromptAuthenticator when the user does not confirm.
var ErrNotConfirmed = errors.New("user presence not confirmed")

// PromptAuthenticator confirms user presence on the terminal before a password is revealed.
//
// Keys generated with the user-presence policy are additionally protected by the
// keyring backend, which only releases them to an unlocked user session.
type PromptAuthenticator struct {
	io IOTuple
}

// NewPromptAuthenticator creates a PromptAuthenticator reading from io.
func NewPromptAuthenticator(io IOTuple) *PromptAuthenticator {
	return &PromptAuthenticator{io: io}
}

// Authenticate blocks until the user answers. Cancellation of ctx is honored before prompting.
func (a *PromptAuthenticator) Authenticate(ctx context.Context, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ok, err := newPrompter(a.io).confirm(fmt.Sprintf("%s. Continue?", reason))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}
