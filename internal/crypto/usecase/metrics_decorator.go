package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/metrics"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Seal records metrics for seal operations.
func (v *vaultUseCaseWithMetrics) Seal(ctx context.Context, plaintext []byte) (cryptoDomain.SealedSecret, error) {
	start := time.Now()
	sealed, err := v.next.Seal(ctx, plaintext)
	v.record(ctx, "vault_seal", start, err)
	return sealed, err
}

// Open records metrics for open operations.
func (v *vaultUseCaseWithMetrics) Open(ctx context.Context, sealed cryptoDomain.SealedSecret) ([]byte, error) {
	start := time.Now()
	plaintext, err := v.next.Open(ctx, sealed)
	v.record(ctx, "vault_open", start, err)
	return plaintext, err
}

// Recover records metrics for key recovery operations.
func (v *vaultUseCaseWithMetrics) Recover(ctx context.Context) error {
	start := time.Now()
	err := v.next.Recover(ctx)
	v.record(ctx, "vault_recover", start, err)
	return err
}

// State delegates without recording.
func (v *vaultUseCaseWithMetrics) State() cryptoDomain.VaultState {
	return v.next.State()
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "crypto", operation, status)
	v.metrics.RecordDuration(ctx, "crypto", operation, time.Since(start), status)
	v.metrics.RecordKeyState(ctx, int64(v.next.State()))
}
