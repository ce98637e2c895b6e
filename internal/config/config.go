package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendFiles  = "files"
	BackendSQLite = "sqlite"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	// EnvPrefix prefixes every environment override, e.g. PLANESWALKER_DATA_DIR
	EnvPrefix = "PLANESWALKER"
)

// Config represents the application configuration
type Config struct {
	DataDir   string `toml:"data_dir" mapstructure:"data_dir"`
	Backend   string `toml:"backend" mapstructure:"backend"`
	LogLevel  string `toml:"log_level" mapstructure:"log_level"`
	LogFormat string `toml:"log_format" mapstructure:"log_format"`
	Color     string `toml:"color" mapstructure:"color"`
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"data-dir":   "data_dir",
	"backend":    "backend",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDefaultDataDir returns the directory that holds the user collections
func GetDefaultDataDir() string {
	return filepath.Join(GetXDGDataHome(), "planeswalker", "users")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "planeswalker", "config.toml")
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:   GetDefaultDataDir(),
		Backend:   BackendFiles,
		LogLevel:  "warn",
		LogFormat: "text",
		Color:     ColorAuto,
	}
}

// Load reads the config file at path (the default location when empty),
// creating it when missing, then applies .env, PLANESWALKER_* environment
// variables and any changed flags on top of it.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	fileConfig, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("data_dir", fileConfig.DataDir)
	v.SetDefault("backend", fileConfig.Backend)
	v.SetDefault("log_level", fileConfig.LogLevel)
	v.SetDefault("log_format", fileConfig.LogFormat)
	v.SetDefault("color", fileConfig.Color)

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %v", name, err)
				}
			}
		}
		if noColor, err := flags.GetBool("no-color"); err == nil && noColor {
			v.Set("color", ColorNever)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error reading configuration: %v", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// loadFile decodes the config file, filling unset keys with defaults
func loadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefaultConfig(path)
	}

	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	configDir := filepath.Dir(path)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := Default()

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch c.Backend {
	case BackendFiles, BackendSQLite:
	default:
		return fmt.Errorf("unsupported backend %q (supported: %s, %s)", c.Backend, BackendFiles, BackendSQLite)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unsupported color mode %q (supported: %s, %s, %s)", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	return nil
}

// DatabasePath returns the SQLite database file used by the sqlite backend
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "cards.db")
}
