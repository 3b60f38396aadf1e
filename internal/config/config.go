// Package config loads bmterm settings from defaults, an optional JSON config
// file, BMTERM_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/bmterm/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading the environment,
// e.g. BMTERM_DATABASE.
const EnvPrefix = "BMTERM"

// Keys understood in the config file and environment.
const (
	KeyDatabase      = "database"
	KeyDefaultFolder = "default_folder"
	KeyLogFile       = "log_file"
	KeyLogLevel      = "log_level"
	KeyQueueSize     = "queue_size"
)

// Config holds the resolved settings.
type Config struct {
	Database      string `mapstructure:"database"`
	DefaultFolder string `mapstructure:"default_folder"`
	LogFile       string `mapstructure:"log_file"`
	LogLevel      string `mapstructure:"log_level"`
	QueueSize     int    `mapstructure:"queue_size"`
}

// Dir returns the bmterm config directory: ~/.config/bmterm
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bmterm"), nil
}

// Load resolves the configuration into v. With an explicit configFile the
// file must exist; otherwise config.json in Dir is read when present.
// Flags bound to v before Load take precedence over everything else.
func Load(v *viper.Viper, configFile string) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v.SetDefault(KeyDatabase, filepath.Join(dir, "bookmarks.db"))
	v.SetDefault(KeyDefaultFolder, model.BookmarksBarID)
	v.SetDefault(KeyLogFile, filepath.Join(dir, "bmterm.log"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyQueueSize, 32)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Database == "" {
		return errors.New("database path must not be empty")
	}
	if c.DefaultFolder == "" {
		return errors.New("default_folder must not be empty")
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be positive, got %d", c.QueueSize)
	}
	return nil
}
