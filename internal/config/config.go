package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Import   ImportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// StorageConfig holds local file storage configuration
type StorageConfig struct {
	BasePath string
}

// ImportConfig holds attendance sheet import configuration
type ImportConfig struct {
	MaxUploadMB int
	Workers     int
	Retention   time.Duration
}

// MaxUploadBytes returns the upload limit in bytes.
func (c ImportConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// fileConfig mirrors Config for the optional YAML file named by CONFIG_FILE.
// Non-zero values override the environment.
type fileConfig struct {
	App struct {
		Port               int      `yaml:"port"`
		Env                string   `yaml:"env"`
		LogLevel           string   `yaml:"log_level"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"app"`
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"ssl_mode"`
		MaxConns int32  `yaml:"max_conns"`
		MinConns int32  `yaml:"min_conns"`
	} `yaml:"database"`
	Storage struct {
		BasePath string `yaml:"base_path"`
	} `yaml:"storage"`
	Import struct {
		MaxUploadMB int    `yaml:"max_upload_mb"`
		Workers     int    `yaml:"workers"`
		Retention   string `yaml:"retention"`
	} `yaml:"import"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	config, err := loadFromEnv()
	if err != nil {
		return nil, err
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, err
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadFromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
	}

	// Import configuration
	maxUpload, err := strconv.Atoi(getEnv("IMPORT_MAX_UPLOAD_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_MAX_UPLOAD_MB: %w", err)
	}
	workers, err := strconv.Atoi(getEnv("IMPORT_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_WORKERS: %w", err)
	}
	retention, err := time.ParseDuration(getEnv("IMPORT_RETENTION", "2160h"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_RETENTION: %w", err)
	}

	config.Import = ImportConfig{
		MaxUploadMB: maxUpload,
		Workers:     workers,
		Retention:   retention,
	}

	return config, nil
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setInt(&c.App.Port, fc.App.Port)
	setString(&c.App.Env, fc.App.Env)
	setString(&c.App.LogLevel, fc.App.LogLevel)
	if len(fc.App.CORSAllowedOrigins) > 0 {
		c.App.CORSAllowedOrigins = fc.App.CORSAllowedOrigins
	}

	setString(&c.Database.Host, fc.Database.Host)
	setInt(&c.Database.Port, fc.Database.Port)
	setString(&c.Database.User, fc.Database.User)
	setString(&c.Database.Password, fc.Database.Password)
	setString(&c.Database.Name, fc.Database.Name)
	setString(&c.Database.SSLMode, fc.Database.SSLMode)
	if fc.Database.MaxConns > 0 {
		c.Database.MaxConns = fc.Database.MaxConns
	}
	if fc.Database.MinConns > 0 {
		c.Database.MinConns = fc.Database.MinConns
	}

	setString(&c.Storage.BasePath, fc.Storage.BasePath)

	setInt(&c.Import.MaxUploadMB, fc.Import.MaxUploadMB)
	setInt(&c.Import.Workers, fc.Import.Workers)
	if fc.Import.Retention != "" {
		retention, err := time.ParseDuration(fc.Import.Retention)
		if err != nil {
			return fmt.Errorf("config file %s: import.retention: %w", path, err)
		}
		c.Import.Retention = retention
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Storage.BasePath == "" {
		return fmt.Errorf("STORAGE_BASE_PATH is required")
	}
	if c.Import.MaxUploadMB <= 0 {
		return fmt.Errorf("IMPORT_MAX_UPLOAD_MB must be positive")
	}
	if c.Import.Workers <= 0 {
		return fmt.Errorf("IMPORT_WORKERS must be positive")
	}
	if c.Import.Retention <= 0 {
		return fmt.Errorf("IMPORT_RETENTION must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	result := strings.Split(value, ",")
	for i := range result {
		result[i] = strings.TrimSpace(result[i])
	}
	return result
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
