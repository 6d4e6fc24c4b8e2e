package app

import (
	"fmt"

	credentialsRepository "github.com/allisson/passvault/internal/credentials/repository"
	credentialsService "github.com/allisson/passvault/internal/credentials/service"
	credentialsUseCase "github.com/allisson/passvault/internal/credentials/usecase"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/database"
)

// CredentialRepository returns the credential repository for the configured database driver.
func (c *Container) CredentialRepository() (credentialsUseCase.CredentialRepository, error) {
	var err error
	c.credentialRepoInit.Do(func() {
		c.credentialRepo, err = c.initCredentialRepository()
		if err != nil {
			c.setInitError("credentialRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("credentialRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the credential use case, wrapped with metrics.
func (c *Container) CredentialUseCase() (credentialsUseCase.CredentialUseCase, error) {
	var err error
	c.credentialUseCaseInit.Do(func() {
		c.credentialUseCase, err = c.initCredentialUseCase()
		if err != nil {
			c.setInitError("credentialUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("credentialUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// PasswordGenerator returns the random password generator.
func (c *Container) PasswordGenerator() credentialsService.PasswordGenerator {
	c.generatorInit.Do(func() {
		c.passwordGenerator = credentialsService.NewPasswordGenerator()
	})
	return c.passwordGenerator
}

// initCredentialRepository creates the credential repository based on the database driver.
func (c *Container) initCredentialRepository() (credentialsUseCase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return credentialsRepository.NewPostgreSQLCredentialRepository(db), nil
	case database.DriverMySQL:
		return credentialsRepository.NewMySQLCredentialRepository(db), nil
	case database.DriverSQLite:
		return credentialsRepository.NewSQLiteCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCredentialUseCase creates the credential use case with all its dependencies.
func (c *Container) initCredentialUseCase() (credentialsUseCase.CredentialUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for credential use case: %w", err)
	}

	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential use case: %w", err)
	}

	vault, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault for credential use case: %w", err)
	}

	policy, err := cryptoDomain.ParseAuthPolicy(c.config.KeyAuthPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid key configuration: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
	}

	useCase := credentialsUseCase.NewCredentialUseCase(
		txManager,
		repo,
		vault,
		c.authenticator,
		policy,
		c.Logger(),
	)
	return credentialsUseCase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics), nil
}
