package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration loaded from environment variables
// and the optional local database credentials file.
type Config struct {
	Env               string
	HTTPPort          int
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration

	DataBackend string

	Database          DatabaseConfig
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	JWTSecret string
	JWTExpiry time.Duration
}

// DatabaseConfig describes how to reach the MySQL instance. Credentials are
// typically kept in a local, untracked db_config.yaml rather than in the
// environment.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"database"`
}

const (
	defaultEnv               = "development"
	defaultHTTPPort          = 8080
	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second

	defaultDataBackend = "memory"

	defaultDBConfigFile = "db_config.yaml"

	defaultDBHost = "127.0.0.1"
	defaultDBPort = 3306
	defaultDBName = "MNMarketLink"

	defaultDBMaxOpenConns    = 10
	defaultDBMaxIdleConns    = 5
	defaultDBConnMaxLifetime = time.Hour
	defaultDBConnMaxIdleTime = 30 * time.Minute

	defaultJWTExpiry = 24 * time.Hour
)

// Load reads configuration values from the environment, applying defaults
// where necessary. When DATA_BACKEND=mysql, database credentials come from
// the file named by DB_CONFIG_FILE (default db_config.yaml) if it exists,
// with environment variables overriding individual fields.
//
// JWTSecret may be empty here; callers that issue tokens must check it.
// The seed command never issues tokens and runs without one.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", defaultEnv),
		HTTPPort:          getInt("HTTP_PORT", defaultHTTPPort),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ReadHeaderTimeout: getDuration("READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),

		DataBackend: getEnv("DATA_BACKEND", defaultDataBackend),

		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", defaultDBMaxIdleConns),
		DBConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", defaultDBConnMaxLifetime),
		DBConnMaxIdleTime: getDuration("DB_CONN_MAX_IDLE_TIME", defaultDBConnMaxIdleTime),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: getDuration("JWT_EXPIRY", defaultJWTExpiry),
	}

	switch cfg.DataBackend {
	case "memory":
		// no database needed
	case "mysql":
		db, err := loadDatabaseConfig(getEnv("DB_CONFIG_FILE", defaultDBConfigFile))
		if err != nil {
			return Config{}, err
		}
		if err := db.validate(); err != nil {
			return Config{}, err
		}
		cfg.Database = db
	default:
		return Config{}, fmt.Errorf("unknown DATA_BACKEND value: %s", cfg.DataBackend)
	}

	return cfg, nil
}

// loadDatabaseConfig reads the YAML credentials file when present and then
// applies environment overrides. ${VAR} references inside the file are
// expanded before parsing.
func loadDatabaseConfig(path string) (DatabaseConfig, error) {
	db := DatabaseConfig{
		Host: defaultDBHost,
		Port: defaultDBPort,
		Name: defaultDBName,
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &db); err != nil {
			return DatabaseConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// environment variables only
	default:
		return DatabaseConfig{}, fmt.Errorf("read %s: %w", path, err)
	}

	db.Host = getEnv("MYSQL_HOST", db.Host)
	db.Port = getInt("MYSQL_PORT", db.Port)
	db.User = getEnv("MYSQL_USER", db.User)
	db.Password = getEnv("MYSQL_PASSWORD", db.Password)
	db.Name = getEnv("MYSQL_DATABASE", db.Name)

	return db, nil
}

func (db DatabaseConfig) validate() error {
	if db.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535, got %d", db.Port)
	}
	if db.User == "" {
		return fmt.Errorf("database user is required")
	}
	if db.Name == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
