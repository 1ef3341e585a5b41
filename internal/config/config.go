package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	CRM       CRMConfig       `yaml:"crm"`
	Log       LogConfig       `yaml:"log"`
	Intake    IntakeConfig    `yaml:"intake"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

// JWTConfig contains tenant session token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	Type            string `yaml:"type"` // "mock" or "firebase"
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	UploadDir       string `yaml:"upload_dir"` // For mock storage
	MaxFileSizeMB   int64  `yaml:"max_file_size_mb"`
}

// CRMConfig contains CRM linkage settings
type CRMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// IntakeConfig contains request issuance settings
type IntakeConfig struct {
	LinkBaseURL           string `yaml:"link_base_url"`
	DocumentExpiryDays    int    `yaml:"document_expiry_days"`
	ApplicationExpiryDays int    `yaml:"application_expiry_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Timezone              string `yaml:"timezone"`
	ExpireStaleRequests   string `yaml:"expire_stale_requests"`
	DispatchPendingEvents string `yaml:"dispatch_pending_events"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("STORAGE_BUCKET"); val != "" {
		c.Storage.Bucket = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Storage.CredentialsFile = val
	}

	// CRM
	if val := os.Getenv("CRM_BASE_URL"); val != "" {
		c.CRM.BaseURL = val
	}
	if val := os.Getenv("CRM_API_KEY"); val != "" {
		c.CRM.APIKey = val
	}

	// Intake
	if val := os.Getenv("LINK_BASE_URL"); val != "" {
		c.Intake.LinkBaseURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and applies defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = "mock"
	}
	if c.Storage.Type == "firebase" && c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required for firebase storage")
	}
	if c.Storage.Type == "mock" && c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "./uploads"
	}
	if c.Storage.MaxFileSizeMB == 0 {
		c.Storage.MaxFileSizeMB = 25
	}

	// Intake defaults
	if c.Intake.LinkBaseURL == "" {
		return fmt.Errorf("intake link base URL is required")
	}
	if c.Intake.DocumentExpiryDays == 0 {
		c.Intake.DocumentExpiryDays = 30
	}
	if c.Intake.ApplicationExpiryDays == 0 {
		c.Intake.ApplicationExpiryDays = 30
	}

	// CRM defaults
	if c.CRM.Timeout == 0 {
		c.CRM.Timeout = 10
	}

	// Scheduler defaults
	if c.Scheduler.Timezone == "" {
		c.Scheduler.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", c.Scheduler.Timezone, err)
	}
	if c.Scheduler.ExpireStaleRequests == "" {
		c.Scheduler.ExpireStaleRequests = "0 0 0 * * *" // Midnight in the configured timezone
	}
	if c.Scheduler.DispatchPendingEvents == "" {
		c.Scheduler.DispatchPendingEvents = "0 */5 * * * *" // Every 5 minutes
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ExpiryDaysFor returns the configured expiry window for a request kind.
func (c *Config) ExpiryDaysFor(kind string) int {
	if kind == "MORTGAGE_APPLICATION" {
		return c.Intake.ApplicationExpiryDays
	}
	return c.Intake.DocumentExpiryDays
}
