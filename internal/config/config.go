// Package config handles configuration loading and parsing for offlimits.
//
// The embedded config.toml carries the built-in default protected-pattern
// categories and the hook settings. A user copy at
// ~/.config/offlimits/config.toml (or $OFFLIMITS_CONFIG) overrides it;
// any load failure falls back to the embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dgerlanc/offlimits/internal/constants"
	"github.com/dgerlanc/offlimits/internal/ignore"
	"github.com/dgerlanc/offlimits/internal/logger"
)

//go:embed config.toml
var defaultConfig []byte

// Settings holds the non-pattern knobs.
type Settings struct {
	AuditLog      string   `toml:"audit_log"`
	AuditMaxBytes int64    `toml:"audit_max_bytes"`
	IgnoreFiles   []string `toml:"ignore_files"`
	PolicyFile    string   `toml:"policy_file"`
}

// Category is one named group of built-in protected patterns.
type Category struct {
	Name     string   `toml:"name"`
	Patterns []string `toml:"patterns"`
}

// Config is the decoded configuration.
type Config struct {
	Settings Settings   `toml:"settings"`
	Protect  []Category `toml:"protect"`
}

// DefaultSources returns the built-in categories as ordered pattern
// sources for the ignore store, labeled builtin:<category>.
func (c *Config) DefaultSources() []ignore.Source {
	sources := make([]ignore.Source, 0, len(c.Protect))
	for _, cat := range c.Protect {
		sources = append(sources, ignore.Source{
			Label: "builtin:" + cat.Name,
			Lines: cat.Patterns,
		})
	}
	return sources
}

var (
	globalConfig      *Config
	configInitialized bool
	configPath        string
	initError         error
)

// GetConfigDir returns the config directory path.
// Uses OFFLIMITS_CONFIG env var if set, otherwise ~/.config/offlimits
func GetConfigDir() (string, error) {
	if dir := os.Getenv(constants.EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, constants.XDGConfigSubdir, constants.AppName), nil
}

// GetConfigPath returns the path of the config file that was loaded, or
// empty when running on embedded defaults.
func GetConfigPath() string {
	return configPath
}

// InitError returns the error from the last Init, if any.
func InitError() error {
	return initError
}

// EnsureConfigFiles creates the config directory and writes the default
// config file if it doesn't exist.
func EnsureConfigFiles(configDir string) error {
	if err := os.MkdirAll(configDir, constants.DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, constants.ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, defaultConfig, constants.FileMode); err != nil {
			return fmt.Errorf("failed to write %s: %w", constants.ConfigFileName, err)
		}
	}

	return nil
}

// LoadConfig decodes TOML data into a Config.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	applyFallbacks(&cfg)
	return &cfg, nil
}

// applyFallbacks fills in settings a user config omitted, so a file that
// only overrides the pattern table still discovers ignore files.
func applyFallbacks(cfg *Config) {
	defaults := loadEmbeddedDefaults()
	if len(cfg.Settings.IgnoreFiles) == 0 {
		cfg.Settings.IgnoreFiles = defaults.Settings.IgnoreFiles
	}
	if cfg.Settings.AuditMaxBytes == 0 {
		cfg.Settings.AuditMaxBytes = defaults.Settings.AuditMaxBytes
	}
	if cfg.Settings.PolicyFile == "" {
		cfg.Settings.PolicyFile = defaults.Settings.PolicyFile
	}
	if len(cfg.Protect) == 0 {
		cfg.Protect = defaults.Protect
	}
}

// loadEmbeddedDefaults decodes the embedded default config file.
func loadEmbeddedDefaults() *Config {
	var cfg Config
	// the embedded file is validated by tests; a decode error here means
	// a broken build, not bad user input
	_ = toml.Unmarshal(defaultConfig, &cfg)
	return &cfg
}

// Init loads configuration from files, creating defaults if necessary.
// If loading fails, it falls back to embedded defaults.
func Init() error {
	if configInitialized {
		return nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		logger.Debug("failed to get config dir, using embedded defaults", "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = err
		return err
	}

	if err := EnsureConfigFiles(configDir); err != nil {
		logger.Debug("failed to ensure config files, using embedded defaults", "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = err
		return err
	}

	path := filepath.Join(configDir, constants.ConfigFileName)
	configData, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("failed to read config file, using embedded defaults", "path", path, "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = err
		return fmt.Errorf("failed to read %s: %w", constants.ConfigFileName, err)
	}

	globalConfig, err = LoadConfig(configData)
	if err != nil {
		logger.Debug("failed to parse config, using embedded defaults", "error", err)
		globalConfig = loadEmbeddedDefaults()
		configInitialized = true
		initError = err
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Debug("config loaded successfully",
		"path", path,
		"categories", len(globalConfig.Protect),
		"ignore_files", len(globalConfig.Settings.IgnoreFiles))
	configPath = path
	configInitialized = true
	initError = nil
	return nil
}

// Get returns the current configuration.
// If Init has not been called, it initializes with defaults.
func Get() *Config {
	if !configInitialized {
		Init()
	}
	return globalConfig
}

// Reset resets the configuration state. Used for testing.
func Reset() {
	configInitialized = false
	globalConfig = nil
	configPath = ""
	initError = nil
}

// GetDefaultConfig returns the embedded default configuration.
func GetDefaultConfig() []byte {
	return defaultConfig
}
