package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath  string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Auth holds the operator account created on first start
	Auth struct {
		DefaultUsername string `yaml:"default_username" env:"AUTH_DEFAULT_USERNAME"`
		DefaultPassword string `yaml:"default_password" env:"AUTH_DEFAULT_PASSWORD"`
	} `yaml:"auth"`

	Ledger struct {
		MaxIssueAttempts int `yaml:"max_issue_attempts" env:"LEDGER_MAX_ISSUE_ATTEMPTS"`
	} `yaml:"ledger"`

	Photos struct {
		Dir           string `yaml:"dir" env:"PHOTOS_DIR"`
		BaseURL       string `yaml:"base_url" env:"PHOTOS_BASE_URL"`
		DefaultMale   string `yaml:"default_male" env:"PHOTOS_DEFAULT_MALE"`
		DefaultFemale string `yaml:"default_female" env:"PHOTOS_DEFAULT_FEMALE"`
		Size          int    `yaml:"size" env:"PHOTOS_SIZE"`
	} `yaml:"photos"`

	Backup struct {
		Enabled  bool   `yaml:"enabled" env:"BACKUP_ENABLED"`
		Schedule string `yaml:"schedule" env:"BACKUP_SCHEDULE"`
		Dir      string `yaml:"dir" env:"BACKUP_DIR"`
	} `yaml:"backup"`
}

// LoadConfig loads configuration from a file and environment variables.
// A .env file next to the working directory is loaded first when present.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(reflect.ValueOf(config).Elem()); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "./storage"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "aerowis"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "aerowis"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Auth.DefaultUsername = "admin"

	config.Ledger.MaxIssueAttempts = 3

	config.Photos.Dir = "./storage/photos"
	config.Photos.BaseURL = "/photos"
	config.Photos.DefaultMale = "/static/avatars/male.png"
	config.Photos.DefaultFemale = "/static/avatars/female.png"
	config.Photos.Size = 256

	config.Backup.Enabled = false
	config.Backup.Schedule = "0 22 * * *"
	config.Backup.Dir = "./storage/backups"
}

// applyEnv copies every non-blank variable named by an `env` tag onto its
// field. Sections are nested structs and are walked in place.
func applyEnv(section reflect.Value) error {
	for i := 0; i < section.NumField(); i++ {
		field, meta := section.Field(i), section.Type().Field(i)
		if field.Kind() == reflect.Struct {
			if err := applyEnv(field); err != nil {
				return err
			}
			continue
		}

		name := meta.Tag.Get("env")
		raw := strings.TrimSpace(os.Getenv(name))
		if name == "" || raw == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s: %q is not a whole number", name, raw)
			}
			field.SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(strings.ToLower(raw))
			if err != nil {
				return fmt.Errorf("%s: %q is not true or false", name, raw)
			}
			field.SetBool(b)
		default:
			return fmt.Errorf("%s: %s fields cannot be set from the environment", name, field.Kind())
		}
	}
	return nil
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Ledger.MaxIssueAttempts < 1 {
		return fmt.Errorf("ledger.max_issue_attempts must be at least 1")
	}

	if config.Photos.Size <= 0 {
		return fmt.Errorf("photos.size must be positive")
	}

	if config.Backup.Enabled {
		if config.Backup.Dir == "" {
			return fmt.Errorf("backup dir is required when backup is enabled")
		}
		if _, err := cron.ParseStandard(config.Backup.Schedule); err != nil {
			return fmt.Errorf("invalid backup schedule %q: %w", config.Backup.Schedule, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}
