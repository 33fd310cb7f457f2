package config

import (
	"climate-pipeline/pkg/utils"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the pipeline, the load step and the API.
// Values come from defaults, then an optional YAML file named by
// CLIMATE_CONFIG, then environment variables.
type Config struct {
	InputPath string `yaml:"input_path"`
	OutputDir string `yaml:"output_dir"`
	DBPath    string `yaml:"db_path"`

	ExportParquet bool `yaml:"export_parquet"`
	KeepRuns      int  `yaml:"keep_runs"`

	HTTPAddr        string        `yaml:"http_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		InputPath:       "data/global_temp_data.asc",
		OutputDir:       "data/processed",
		DBPath:          "climate_data.db",
		KeepRuns:        5,
		HTTPAddr:        ":5000",
		ShutdownTimeout: 10 * time.Second,
		CORSOrigins:     []string{"*"},
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads configuration, applying defaults where unset. A .env file in
// the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CLIMATE_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read CLIMATE_CONFIG: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse CLIMATE_CONFIG %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.InputPath, "INPUT_PATH")
	setString(&cfg.OutputDir, "OUTPUT_DIR")
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = utils.SplitList(v)
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := utils.ParseDuration(v, cfg.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if v := os.Getenv("EXPORT_PARQUET"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EXPORT_PARQUET: %w", err)
		}
		cfg.ExportParquet = b
	}

	if v := os.Getenv("KEEP_RUNS"); v != "" {
		n, err := utils.ParseInt(v)
		if err != nil {
			return fmt.Errorf("invalid KEEP_RUNS: %w", err)
		}
		cfg.KeepRuns = n
	}
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("OUTPUT_DIR is required")
	}
	if c.DBPath == "" {
		return errors.New("DB_PATH is required")
	}
	if c.KeepRuns < 1 {
		return fmt.Errorf("KEEP_RUNS must be at least 1, got %d", c.KeepRuns)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
