package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sqlite", cfg.DBDriver)
				assert.Equal(t, "passvault.db", cfg.DBConnectionString)
				assert.Equal(t, 5, cfg.DBMaxOpenConnections)
				assert.Equal(t, 2, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "warn", cfg.LogLevel)
				assert.Equal(t, "PasswordManagerKey", cfg.KeyAlias)
				assert.Equal(t, "aes-gcm", cfg.KeyAlgorithm)
				assert.Equal(t, "user-presence", cfg.KeyAuthPolicy)
				assert.Equal(t, KeystoreKeyring, cfg.KeystoreBackend)
				assert.Equal(t, "passvault", cfg.KeyringServiceName)
				assert.Empty(t, cfg.KeyringBackends)
				assert.NotEmpty(t, cfg.KeyringFileDir)
				assert.False(t, cfg.MetricsEnabled)
				assert.Equal(t, "passvault", cfg.MetricsNamespace)
				assert.Equal(t, 12, cfg.PasswordLength)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb?parseTime=true",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_MAX_IDLE_CONNECTIONS": "10",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb?parseTime=true", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom key configuration",
			envVars: map[string]string{
				"KEY_ALIAS":             "work",
				"KEY_ALGORITHM":         "chacha20-poly1305",
				"KEY_AUTH_POLICY":       "none",
				"KEYSTORE_BACKEND":      "kms",
				"KMS_KEY_URI":           "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=",
				"KEYRING_BACKENDS":      "file, pass,,",
				"KEYRING_FILE_DIR":      "/tmp/keys",
				"KEYRING_FILE_PASSWORD": "s3cret",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "work", cfg.KeyAlias)
				assert.Equal(t, "chacha20-poly1305", cfg.KeyAlgorithm)
				assert.Equal(t, "none", cfg.KeyAuthPolicy)
				assert.Equal(t, KeystoreKMS, cfg.KeystoreBackend)
				assert.Equal(t, "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=", cfg.KMSKeyURI)
				assert.Equal(t, []string{"file", "pass"}, cfg.KeyringBackends)
				assert.Equal(t, "/tmp/keys", cfg.KeyringFileDir)
				assert.Equal(t, "s3cret", cfg.KeyringFilePassword)
			},
		},
		{
			name: "load custom metrics and generator configuration",
			envVars: map[string]string{
				"METRICS_ENABLED":   "true",
				"METRICS_NAMESPACE": "vault",
				"METRICS_TEXTFILE":  "/var/lib/node_exporter/passvault.prom",
				"PASSWORD_LENGTH":   "24",
				"LOG_LEVEL":         "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "vault", cfg.MetricsNamespace)
				assert.Equal(t, "/var/lib/node_exporter/passvault.prom", cfg.MetricsTextfile)
				assert.Equal(t, 24, cfg.PasswordLength)
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	os.Clearenv()
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("KEY_ALIAS=from-dotenv\n"), 0o600))
	t.Chdir(nested)

	cfg := Load()
	assert.Equal(t, "from-dotenv", cfg.KeyAlias)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"keychain"}, splitList("keychain"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
