// Package mocks provides mock implementations of the credential use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockCredentialRepository is a mock implementation of CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

// NewMockCredentialRepository creates a MockCredentialRepository whose expectations are asserted on cleanup.
func NewMockCredentialRepository(t testingT) *MockCredentialRepository {
	m := &MockCredentialRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method. A successful call assigns the id given to Return as the second value, if any.
func (m *MockCredentialRepository) Create(ctx context.Context, credential *credentialsDomain.Credential) error {
	args := m.Called(ctx, credential)
	if len(args) > 1 {
		credential.ID = args.Get(1).(int64)
	}
	return args.Error(0)
}

// Update mocks the Update method.
func (m *MockCredentialRepository) Update(ctx context.Context, credential *credentialsDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockCredentialRepository) Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// List mocks the List method.
func (m *MockCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockCredentialRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Count mocks the Count method.
func (m *MockCredentialRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuthenticator is a mock implementation of Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

// NewMockAuthenticator creates a MockAuthenticator whose expectations are asserted on cleanup.
func NewMockAuthenticator(t testingT) *MockAuthenticator {
	m := &MockAuthenticator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Authenticate mocks the Authenticate method.
func (m *MockAuthenticator) Authenticate(ctx context.Context, reason string) error {
	args := m.Called(ctx, reason)
	return args.Error(0)
}

// MockCredentialUseCase is a mock implementation of CredentialUseCase.
type MockCredentialUseCase struct {
	mock.Mock
}

// NewMockCredentialUseCase creates a MockCredentialUseCase whose expectations are asserted on cleanup.
func NewMockCredentialUseCase(t testingT) *MockCredentialUseCase {
	m := &MockCredentialUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockCredentialUseCase) Create(
	ctx context.Context,
	input credentialsDomain.CreateCredentialInput,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// Update mocks the Update method.
func (m *MockCredentialUseCase) Update(
	ctx context.Context,
	input credentialsDomain.UpdateCredentialInput,
) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// Get mocks the Get method.
func (m *MockCredentialUseCase) Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialsDomain.Credential), args.Error(1)
}

// List mocks the List method.
func (m *MockCredentialUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialsDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockCredentialUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Recover mocks the Recover method.
func (m *MockCredentialUseCase) Recover(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
