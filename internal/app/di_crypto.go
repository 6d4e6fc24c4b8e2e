package app

import (
	"context"
	"fmt"

	"github.com/allisson/passvault/internal/config"
	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/crypto/keystore"
	cryptoRepository "github.com/allisson/passvault/internal/crypto/repository"
	cryptoService "github.com/allisson/passvault/internal/crypto/service"
	cryptoUseCase "github.com/allisson/passvault/internal/crypto/usecase"
	"github.com/allisson/passvault/internal/database"
)

// KeySpec returns the specification of the vault key built from configuration.
func (c *Container) KeySpec() (cryptoDomain.KeySpec, error) {
	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.KeyAlgorithm)
	if err != nil {
		return cryptoDomain.KeySpec{}, err
	}
	policy, err := cryptoDomain.ParseAuthPolicy(c.config.KeyAuthPolicy)
	if err != nil {
		return cryptoDomain.KeySpec{}, err
	}
	spec := cryptoDomain.KeySpec{
		Alias:     c.config.KeyAlias,
		Algorithm: algorithm,
		Policy:    policy,
	}
	if err := spec.Validate(); err != nil {
		return cryptoDomain.KeySpec{}, err
	}
	return spec, nil
}

// SecureStore returns the secure key store selected by KEYSTORE_BACKEND.
func (c *Container) SecureStore() (cryptoService.SecureStore, error) {
	var err error
	c.secureStoreInit.Do(func() {
		c.secureStore, err = c.initSecureStore()
		if err != nil {
			c.setInitError("secureStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secureStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.secureStore, nil
}

// KeyManager returns the key manager service.
func (c *Container) KeyManager() (cryptoService.KeyManager, error) {
	var err error
	c.keyManagerInit.Do(func() {
		c.keyManager, err = c.initKeyManager()
		if err != nil {
			c.setInitError("keyManager", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("keyManager"); storedErr != nil {
		return nil, storedErr
	}
	return c.keyManager, nil
}

// AuthenticatedCipher returns the authenticated cipher service.
func (c *Container) AuthenticatedCipher() cryptoService.AuthenticatedCipher {
	c.cipherInit.Do(func() {
		c.cipher = cryptoService.NewAuthenticatedCipher(cryptoService.NewAEADManager())
	})
	return c.cipher
}

// VaultUseCase returns the credential vault, wrapped with metrics.
func (c *Container) VaultUseCase() (cryptoUseCase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.setInitError("vaultUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("vaultUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// initSecureStore opens the configured key store. There is no fallback between backends.
func (c *Container) initSecureStore() (cryptoService.SecureStore, error) {
	switch c.config.KeystoreBackend {
	case config.KeystoreMemory:
		c.Logger().Warn("using the in-memory key store, keys are lost when the process exits")
		return keystore.NewMemoryStore(), nil
	case config.KeystoreKeyring:
		store, err := keystore.OpenKeyring(keystore.KeyringConfig{
			ServiceName:  c.config.KeyringServiceName,
			Backends:     c.config.KeyringBackends,
			FileDir:      c.config.KeyringFileDir,
			FilePassword: c.config.KeyringFilePassword,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.KeystoreKMS:
		return c.initKMSStore()
	default:
		return nil, fmt.Errorf(
			"%w: unsupported keystore backend %q (valid options: keyring, kms, memory)",
			cryptoDomain.ErrKeyStoreUnavailable,
			c.config.KeystoreBackend,
		)
	}
}

// initKMSStore opens the KMS keeper and the wrapped-key repository for the database driver.
func (c *Container) initKMSStore() (cryptoService.SecureStore, error) {
	if c.config.KMSKeyURI == "" {
		return nil, fmt.Errorf("%w: KMS_KEY_URI is required for the kms keystore", cryptoDomain.ErrKeyStoreUnavailable)
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for kms keystore: %w", err)
	}

	var repo keystore.WrappedKeyRepository
	switch c.config.DBDriver {
	case database.DriverPostgres:
		repo = cryptoRepository.NewPostgreSQLWrappedKeyRepository(db)
	case database.DriverMySQL:
		repo = cryptoRepository.NewMySQLWrappedKeyRepository(db)
	case database.DriverSQLite:
		repo = cryptoRepository.NewSQLiteWrappedKeyRepository(db)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}

	keeper, err := cryptoService.NewKMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.kmsKeeper = keeper
	c.mu.Unlock()

	return keystore.NewKMSStore(keeper, repo), nil
}

// initKeyManager creates the key manager for the configured key spec.
func (c *Container) initKeyManager() (cryptoService.KeyManager, error) {
	spec, err := c.KeySpec()
	if err != nil {
		return nil, fmt.Errorf("invalid key configuration: %w", err)
	}

	store, err := c.SecureStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open secure store: %w", err)
	}

	keyManager, err := cryptoService.NewKeyManager(store, spec, c.Logger())
	if err != nil {
		return nil, err
	}
	return keyManager, nil
}

// initVaultUseCase creates the vault with all its dependencies.
func (c *Container) initVaultUseCase() (cryptoUseCase.VaultUseCase, error) {
	keyManager, err := c.KeyManager()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}

	vault := cryptoUseCase.NewVaultUseCase(keyManager, c.AuthenticatedCipher(), c.Logger())
	return cryptoUseCase.NewVaultUseCaseWithMetrics(vault, businessMetrics), nil
}
