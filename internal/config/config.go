package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "launchdash.yaml"

// Data sources
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

type DataConfig struct {
	Source  string `yaml:"source"`
	CSVPath string `yaml:"csv_path"`
	DBPath  string `yaml:"db_path"`
}

type ServerConfig struct {
	Port               int           `yaml:"port"`
	ShutdownTimeoutStr string        `yaml:"shutdown_timeout"`
	ShutdownTimeout    time.Duration `yaml:"-"`
}

// SliderConfig describes the payload range slider.
type SliderConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Data   DataConfig   `yaml:"data"`
	Server ServerConfig `yaml:"server"`
	Slider SliderConfig `yaml:"slider"`
	Chart  ChartConfig  `yaml:"chart"`
	Log    LogConfig    `yaml:"log"`
}

func Default() *Config {
	return &Config{
		Data: DataConfig{
			Source:  SourceCSV,
			CSVPath: "spacex_launch_dash.csv",
			DBPath:  "./launchdash.db",
		},
		Server: ServerConfig{
			Port:               8050,
			ShutdownTimeoutStr: "5s",
			ShutdownTimeout:    5 * time.Second,
		},
		Slider: SliderConfig{Min: 0, Max: 10000, Step: 1000},
		Chart:  ChartConfig{Width: 960, Height: 480},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration and validates it.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg, err := Read(path, envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds the configuration from defaults, then the YAML file at path
// (or DefaultFile when path is empty and the file exists), then .env, then
// LAUNCHDASH_* environment variables. Variables already set in the process
// environment win over .env entries. The result is not validated, so callers
// applying further overrides must call Validate themselves.
func Read(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Server.ShutdownTimeoutStr != "" {
		d, err := time.ParseDuration(cfg.Server.ShutdownTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse shutdown_timeout: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LAUNCHDASH_DATA"); v != "" {
		c.Data.CSVPath = v
	}
	if v := os.Getenv("LAUNCHDASH_SOURCE"); v != "" {
		c.Data.Source = v
	}
	if v := os.Getenv("LAUNCHDASH_DB"); v != "" {
		c.Data.DBPath = v
	}
	if v := os.Getenv("LAUNCHDASH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LAUNCHDASH_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LAUNCHDASH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LAUNCHDASH_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Data.Source {
	case SourceCSV:
		if c.Data.CSVPath == "" {
			errs = append(errs, errors.New("data.csv_path is required for the csv source"))
		}
	case SourceSQLite:
		if c.Data.DBPath == "" {
			errs = append(errs, errors.New("data.db_path is required for the sqlite source"))
		}
	default:
		errs = append(errs, fmt.Errorf("data.source must be %q or %q, got %q", SourceCSV, SourceSQLite, c.Data.Source))
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Slider.Min > c.Slider.Max {
		errs = append(errs, fmt.Errorf("slider.min %g is greater than slider.max %g", c.Slider.Min, c.Slider.Max))
	}
	if c.Slider.Step <= 0 {
		errs = append(errs, fmt.Errorf("slider.step must be positive, got %g", c.Slider.Step))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
