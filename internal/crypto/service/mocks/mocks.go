// Package mocks provides mock implementations of the crypto service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// MockSecureStore is a mock implementation of SecureStore.
type MockSecureStore struct {
	mock.Mock
}

// NewMockSecureStore creates a MockSecureStore whose expectations are asserted on cleanup.
func NewMockSecureStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSecureStore {
	m := &MockSecureStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Load mocks the Load method of SecureStore.
func (m *MockSecureStore) Load(ctx context.Context, alias string) (*cryptoDomain.StoredKey, error) {
	args := m.Called(ctx, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.StoredKey), args.Error(1)
}

// Generate mocks the Generate method of SecureStore.
func (m *MockSecureStore) Generate(
	ctx context.Context,
	spec cryptoDomain.KeySpec,
) (*cryptoDomain.StoredKey, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.StoredKey), args.Error(1)
}

// Delete mocks the Delete method of SecureStore.
func (m *MockSecureStore) Delete(ctx context.Context, alias string) error {
	args := m.Called(ctx, alias)
	return args.Error(0)
}

// MockKeyManager is a mock implementation of KeyManager.
type MockKeyManager struct {
	mock.Mock
}

// NewMockKeyManager creates a MockKeyManager whose expectations are asserted on cleanup.
func NewMockKeyManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeyManager {
	m := &MockKeyManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EnsureKey mocks the EnsureKey method of KeyManager.
func (m *MockKeyManager) EnsureKey(ctx context.Context) (*cryptoDomain.KeyHandle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyHandle), args.Error(1)
}

// Key mocks the Key method of KeyManager.
func (m *MockKeyManager) Key(ctx context.Context) (*cryptoDomain.KeyHandle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyHandle), args.Error(1)
}

// HasKey mocks the HasKey method of KeyManager.
func (m *MockKeyManager) HasKey(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// DeleteKey mocks the DeleteKey method of KeyManager.
func (m *MockKeyManager) DeleteKey(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Spec mocks the Spec method of KeyManager.
func (m *MockKeyManager) Spec() cryptoDomain.KeySpec {
	args := m.Called()
	return args.Get(0).(cryptoDomain.KeySpec)
}

// MockAuthenticatedCipher is a mock implementation of AuthenticatedCipher.
type MockAuthenticatedCipher struct {
	mock.Mock
}

// NewMockAuthenticatedCipher creates a MockAuthenticatedCipher whose expectations are asserted on cleanup.
func NewMockAuthenticatedCipher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuthenticatedCipher {
	m := &MockAuthenticatedCipher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Encrypt mocks the Encrypt method of AuthenticatedCipher.
func (m *MockAuthenticatedCipher) Encrypt(
	handle *cryptoDomain.KeyHandle,
	plaintext []byte,
) (cryptoDomain.SealedSecret, error) {
	args := m.Called(handle, plaintext)
	return args.Get(0).(cryptoDomain.SealedSecret), args.Error(1)
}

// Decrypt mocks the Decrypt method of AuthenticatedCipher.
func (m *MockAuthenticatedCipher) Decrypt(
	handle *cryptoDomain.KeyHandle,
	sealed cryptoDomain.SealedSecret,
) ([]byte, error) {
	args := m.Called(handle, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
