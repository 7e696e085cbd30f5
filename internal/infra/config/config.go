// internal/infra/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// Config holds the environment-driven settings of the API server.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// GCPProjectID is the fallback for the Firestore / Firebase project ids.
	GCPProjectID             string `env:"GCP_PROJECT_ID"`
	FirestoreProjectID       string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`
	FirebaseProjectID        string `env:"FIREBASE_PROJECT_ID"`
	GCPCreds                 string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	GCSBucket     string `env:"GCS_BUCKET"`
	GCSSignedURLs bool   `env:"GCS_SIGNED_URLS" envDefault:"false"`

	// StoreBackend selects firestore (+ GCS) or the in-process memory stores.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"firestore"`

	// Optional read-through cache for single-document reads.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	RemoteCallTimeout time.Duration `env:"REMOTE_CALL_TIMEOUT" envDefault:"10s"`

	// Web API key for password sign-in; read from Secret Manager when only
	// the secret id is set.
	FirebaseAPIKey       string `env:"FIREBASE_API_KEY"`
	FirebaseAPIKeySecret string `env:"FIREBASE_API_KEY_SECRET"`

	DefaultCity string `env:"DEFAULT_CITY" envDefault:"인천광역시"`
	DefaultTown string `env:"DEFAULT_TOWN" envDefault:"부평구"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	if c.FirestoreProjectID == "" {
		c.FirestoreProjectID = c.GCPProjectID
	}
	if c.FirebaseProjectID == "" {
		c.FirebaseProjectID = c.GCPProjectID
	}
	origins := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSOrigins = origins
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
		return nil
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("config: FIRESTORE_PROJECT_ID or GCP_PROJECT_ID is required for the firestore backend")
		}
		if c.GCSBucket == "" {
			return fmt.Errorf("config: GCS_BUCKET is required for the firestore backend")
		}
		return nil
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
}

// GetFirestoreProjectID returns the Firestore / GCP project id.
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UsesMemoryStore reports whether the in-process stores back the server.
func (c *Config) UsesMemoryStore() bool {
	return c.StoreBackend == BackendMemory
}
