// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Keystore backends selectable with KEYSTORE_BACKEND.
const (
	KeystoreKeyring = "keyring"
	KeystoreKMS     = "kms"
	KeystoreMemory  = "memory"
)

// Config holds all application configuration.
type Config struct {
	// DBDriver is the database driver to use ("sqlite", "postgres" or "mysql").
	DBDriver string
	// DBConnectionString is the connection string (or file path for sqlite) for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// KeyAlias is the name the vault key is stored under.
	KeyAlias string
	// KeyAlgorithm is the AEAD algorithm of newly generated keys ("aes-gcm" or "chacha20-poly1305").
	KeyAlgorithm string
	// KeyAuthPolicy is the user-authentication policy of newly generated keys ("user-presence" or "none").
	KeyAuthPolicy string

	// KeystoreBackend selects where the key lives ("keyring", "kms" or "memory").
	KeystoreBackend string
	// KeyringServiceName is the service name keyring items are filed under.
	KeyringServiceName string
	// KeyringBackends is the ordered list of keyring backends to try; empty means all available.
	KeyringBackends []string
	// KeyringFileDir is the directory of the encrypted-file keyring backend.
	KeyringFileDir string
	// KeyringFilePassword unlocks the encrypted-file keyring backend; empty means prompt.
	KeyringFilePassword string

	// KMSKeyURI is the gocloud.dev secrets URI of the key that wraps the vault key.
	KMSKeyURI string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsTextfile is the path metrics are written to on exit, in Prometheus text format.
	MetricsTextfile string

	// PasswordLength is the default length of generated passwords.
	PasswordLength int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Database configuration
		DBDriver:             env.GetString("DB_DRIVER", "sqlite"),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", "passvault.db"),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 5),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 2),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "warn"),

		// Vault key
		KeyAlias:      env.GetString("KEY_ALIAS", "PasswordManagerKey"),
		KeyAlgorithm:  env.GetString("KEY_ALGORITHM", "aes-gcm"),
		KeyAuthPolicy: env.GetString("KEY_AUTH_POLICY", "user-presence"),

		// Key store
		KeystoreBackend:     env.GetString("KEYSTORE_BACKEND", KeystoreKeyring),
		KeyringServiceName:  env.GetString("KEYRING_SERVICE_NAME", "passvault"),
		KeyringBackends:     splitList(env.GetString("KEYRING_BACKENDS", "")),
		KeyringFileDir:      env.GetString("KEYRING_FILE_DIR", defaultKeyringDir()),
		KeyringFilePassword: env.GetString("KEYRING_FILE_PASSWORD", ""),

		// KMS configuration
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "passvault"),
		MetricsTextfile:  env.GetString("METRICS_TEXTFILE", ""),

		// Password generator
		PasswordLength: env.GetInt("PASSWORD_LENGTH", 12),
	}
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func defaultKeyringDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".passvault-keyring"
	}
	return filepath.Join(dir, "passvault", "keyring")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
