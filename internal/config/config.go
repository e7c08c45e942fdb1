package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Mode declares how the process was launched. It is resolved once at startup
// and passed down explicitly; adapters never read the environment themselves.
type Mode string

const (
	ModeProduction Mode = "production"
	ModeDemo       Mode = "demo"
	ModeScreenshot Mode = "screenshot"
	ModeUITest     Mode = "uitest"
)

// Load policies for the file-backed store.
const (
	LoadPolicyFailOpen   = "fail_open"
	LoadPolicyFailClosed = "fail_closed"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Mode    Mode
	Storage StorageConfig
	S3      S3Config
	OTEL    OTELConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// StorageConfig holds the file-backed store configuration
type StorageConfig struct {
	Dir        string // base directory for the primary store and exports
	FileName   string // primary store file name
	LoadPolicy string // fail_open or fail_closed
}

// S3Config holds the optional export backup target (S3-compatible endpoint,
// e.g. SeaweedFS or MinIO). Backup is disabled when Endpoint or Bucket is
// empty.
type S3Config struct {
	Endpoint string
	Bucket   string
	Region   string
}

// Enabled reports whether an export backup target is configured.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	InstanceID     string
	Token          string
}

// Load reads configuration from environment variables
// It attempts to load from .env file first, then falls back to system env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Mode: Mode(getEnv("APP_MODE", string(ModeProduction))),
		Storage: StorageConfig{
			Dir:        getEnv("DATA_DIR", defaultDataDir()),
			FileName:   getEnv("DATA_FILE", ""),
			LoadPolicy: getEnv("LOAD_POLICY", LoadPolicyFailOpen),
		},
		S3: S3Config{
			Endpoint: getEnv("S3_ENDPOINT", ""),
			Bucket:   getEnv("S3_BUCKET", ""),
			Region:   getEnv("S3_REGION", "us-east-1"),
		},
		OTEL: OTELConfig{
			Enabled:        getEnv("OTEL_ENABLED", "false") == "true",
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "liftlog-api"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    getEnv("OTEL_ENVIRONMENT", "development"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			InstanceID:     getEnv("OTEL_INSTANCE_ID", ""),
			Token:          getEnv("OTEL_TOKEN", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeProduction, ModeDemo, ModeScreenshot, ModeUITest:
	default:
		return fmt.Errorf("APP_MODE must be one of production, demo, screenshot, uitest; got %q", c.Mode)
	}
	switch c.Storage.LoadPolicy {
	case LoadPolicyFailOpen, LoadPolicyFailClosed:
	default:
		return fmt.Errorf("LOAD_POLICY must be %s or %s; got %q", LoadPolicyFailOpen, LoadPolicyFailClosed, c.Storage.LoadPolicy)
	}
	if c.Mode == ModeProduction && c.Storage.Dir == "" {
		return fmt.Errorf("DATA_DIR is required in production mode")
	}
	if c.OTEL.Enabled && c.OTEL.Endpoint == "" {
		return fmt.Errorf("OTEL_ENDPOINT is required when OTEL_ENABLED=true")
	}
	return nil
}

// defaultDataDir resolves the platform's per-user application-data directory.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "liftlog")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
