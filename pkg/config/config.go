package config

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "garageledger"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Seed    SeedConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GARAGELEDGER_APP_ENV" default:"dev"`
	Port         string `envconfig:"GARAGELEDGER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GARAGELEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GARAGELEDGER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	DataDir  string `envconfig:"GARAGELEDGER_DATA_DIR" default:"data"`
	FileMode uint32 `envconfig:"GARAGELEDGER_DATA_FILE_MODE" default:"420"`
	DirMode  uint32 `envconfig:"GARAGELEDGER_DATA_DIR_MODE" default:"493"`
}

// FilePerm returns the file mode for collection files (default 0644).
func (s StorageConfig) FilePerm() fs.FileMode {
	return fs.FileMode(s.FileMode)
}

// DirPerm returns the mode used when creating the data directory (default 0755).
func (s StorageConfig) DirPerm() fs.FileMode {
	return fs.FileMode(s.DirMode)
}

type SeedConfig struct {
	Disable bool `envconfig:"GARAGELEDGER_SEED_DISABLE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GARAGELEDGER_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
