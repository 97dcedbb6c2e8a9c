// Package config loads application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read before the environment, if present. Real environment
// variables always win over values from the file.
const DefaultEnvFile = ".env"

// Config is the full application configuration.
type Config struct {
	Environment string  `mapstructure:"environment"`
	Server      Server  `mapstructure:"server"`
	Storage     Storage `mapstructure:"storage"`
	Logging     Logging `mapstructure:"logging"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// Storage locates the activities file and the static front-end.
type Storage struct {
	DataFile  string `mapstructure:"data_file"`
	StaticDir string `mapstructure:"static_dir"`
	// SeedDemo installs the demo catalogue when the registry starts empty.
	SeedDemo  bool   `mapstructure:"seed_demo"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// envBindings lists each key with the environment variables it accepts, in priority order.
var envBindings = map[string][]string{
	"environment":             {"APP_ENVIRONMENT", "ENVIRONMENT"},
	"server.addr":             {"SERVER_ADDR"},
	"server.shutdown_timeout": {"SERVER_SHUTDOWN_TIMEOUT"},
	"server.request_timeout":  {"SERVER_REQUEST_TIMEOUT"},
	"storage.data_file":       {"STORAGE_DATA_FILE", "DATA_FILE"},
	"storage.static_dir":      {"STORAGE_STATIC_DIR", "STATIC_DIR"},
	"storage.seed_demo":       {"STORAGE_SEED_DEMO", "SEED_DEMO"},
	"logging.level":           {"LOGGING_LEVEL", "LOG_LEVEL"},
	"logging.format":          {"LOGGING_FORMAT", "LOG_FORMAT"},
	"logging.file":            {"LOGGING_FILE", "LOG_FILE"},
}

// Load reads envFile (optional) and the environment using viper with typed
// defaults, then validates the result.
func Load(envFile string) (*Config, error) {
	if err := preloadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if strings.TrimSpace(c.Storage.DataFile) == "" {
		errs = append(errs, errors.New("storage.data_file is required"))
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or text", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

func preloadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	envMap, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)

	v.SetDefault("storage.data_file", "data/activities.json")
	v.SetDefault("storage.static_dir", "src/static")
	v.SetDefault("storage.seed_demo", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
}

func bindEnvs(v *viper.Viper) error {
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}
