package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

// DefaultStorageKey is the key the whole league is stored under.
const DefaultStorageKey = "shembeldon_en_v1"


type StorageConfig struct {
	Driver        string        `yaml:"driver"`
	Key           string        `yaml:"key"`
	SQLitePath    string        `yaml:"sqlite_path"`
	DynamoDBTable string        `yaml:"dynamodb_table"`
	SaveTimeout   time.Duration `yaml:"save_timeout"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	PostgresDSN   string        `yaml:"-"` // Loaded from environment
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		Seed            bool          `yaml:"seed"`
	} `yaml:"app"`

	Storage StorageConfig `yaml:"storage"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "shembeldon-league"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.ShutdownTimeout = 30 * time.Second
	cfg.App.Seed = true
	cfg.Storage.Driver = DriverMemory
	cfg.Storage.Key = DefaultStorageKey
	cfg.Storage.SQLitePath = "data/league.db"
	cfg.Storage.SaveTimeout = 5 * time.Second
	cfg.Storage.RetryInterval = 30 * time.Second
	return cfg
}

// Load reads .env and the YAML file at configPath, then applies environment
// overrides. A missing YAML file leaves the defaults in place.
func Load(configPath string) (*Config, error) {
	envPath := ".env"
	if configPath != "" {
		envPath = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("ENVIRONMENT")); v != "" {
		c.App.Environment = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.App.Port = port
		}
	}
	// APP=prod is how deployments turn demo data off.
	if strings.EqualFold(strings.TrimSpace(os.Getenv("APP")), "prod") {
		c.App.Seed = false
	}
	if v := strings.TrimSpace(os.Getenv("STORAGE_DRIVER")); v != "" {
		c.Storage.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_PATH")); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := strings.TrimSpace(os.Getenv("DYNAMODB_TABLE")); v != "" {
		c.Storage.DynamoDBTable = v
	}
	c.Storage.PostgresDSN = strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key is required")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for sqlite")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for postgres")
		}
	case DriverDynamoDB:
		if c.Storage.DynamoDBTable == "" {
			return fmt.Errorf("dynamodb table is required for dynamodb")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
