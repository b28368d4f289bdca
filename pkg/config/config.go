package config

import (
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count" default:"5"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay" default:"2s"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path" default:"storyloft.db"`
	Hostname                  string        `koanf:"-"`
	LibraryRoot               string        `koanf:"library_root"`
	MaxFolders                int           `koanf:"max_folders" default:"1000"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port" default:"3856"`
	SheetsCredentialsFile     string        `koanf:"sheets_credentials_file"`
	SheetsSpreadsheetID       string        `koanf:"sheets_spreadsheet_id"`
	SheetsWorksheet           string        `koanf:"sheets_worksheet" default:"Books"`
	WorkerProcesses           int           `koanf:"worker_processes" default:"2"`
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"
	envPrefix      = "STORYLOFT_"
)

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.Hostname = hostname

	k := koanf.New(".")

	// Optional config file. A missing file isn't an error since everything has
	// a default or an env override.
	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, statErr := os.Stat(configFile); statErr == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	// Env overrides: STORYLOFT_SERVER_PORT=4000 -> server_port.
	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
	}

	return cfg, nil
}
