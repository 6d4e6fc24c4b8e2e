package usecase

import (
	"context"
	"time"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	"github.com/allisson/passvault/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for credential creation.
func (c *credentialUseCaseWithMetrics) Create(
	ctx context.Context,
	input credentialsDomain.CreateCredentialInput,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Create(ctx, input)
	c.record(ctx, "credential_create", start, err)
	return credential, err
}

// Update records metrics for credential updates.
func (c *credentialUseCaseWithMetrics) Update(
	ctx context.Context,
	input credentialsDomain.UpdateCredentialInput,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Update(ctx, input)
	c.record(ctx, "credential_update", start, err)
	return credential, err
}

// Get records metrics for credential reveals.
func (c *credentialUseCaseWithMetrics) Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Get(ctx, id)
	c.record(ctx, "credential_get", start, err)
	return credential, err
}

// List records metrics for credential listing.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, offset, limit)
	c.record(ctx, "credential_list", start, err)
	return credentials, err
}

// Delete records metrics for credential deletion.
func (c *credentialUseCaseWithMetrics) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := c.next.Delete(ctx, id)
	c.record(ctx, "credential_delete", start, err)
	return err
}

// Recover records metrics for credential recovery.
func (c *credentialUseCaseWithMetrics) Recover(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := c.next.Recover(ctx)
	c.record(ctx, "credential_recover", start, err)
	return count, err
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "credentials", operation, status)
	c.metrics.RecordDuration(ctx, "credentials", operation, time.Since(start), status)
}
