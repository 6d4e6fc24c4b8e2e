// Package mocks provides mock implementations of the crypto use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// MockVaultUseCase is a mock implementation of VaultUseCase.
type MockVaultUseCase struct {
	mock.Mock
}

// NewMockVaultUseCase creates a MockVaultUseCase whose expectations are asserted on cleanup.
func NewMockVaultUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVaultUseCase {
	m := &MockVaultUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Seal mocks the Seal method of VaultUseCase.
func (m *MockVaultUseCase) Seal(ctx context.Context, plaintext []byte) (cryptoDomain.SealedSecret, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).(cryptoDomain.SealedSecret), args.Error(1)
}

// Open mocks the Open method of VaultUseCase.
func (m *MockVaultUseCase) Open(ctx context.Context, sealed cryptoDomain.SealedSecret) ([]byte, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Recover mocks the Recover method of VaultUseCase.
func (m *MockVaultUseCase) Recover(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// State mocks the State method of VaultUseCase.
func (m *MockVaultUseCase) State() cryptoDomain.VaultState {
	args := m.Called()
	return args.Get(0).(cryptoDomain.VaultState)
}
