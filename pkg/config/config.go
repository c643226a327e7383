/*
Package config manages TOML config for kodic.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/kodic/internal/utils"
	"github.com/bastiangx/kodic/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// DictConfig holds the upstream dictionary options.
type DictConfig struct {
	Endpoint string `toml:"endpoint"`
	Charset  string `toml:"charset"`
	PageRow  int    `toml:"page_row"`
	// nouns remembered for prefix completion
	IndexWords int `toml:"index_words"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MinPrefix int `toml:"min_prefix"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultMode string   `toml:"default_mode"`
	Banned      []string `toml:"banned"`
}

// Params converts the dictionary section into query parameters.
func (d DictConfig) Params() dictionary.Params {
	return dictionary.Params{Charset: d.Charset, PageRow: d.PageRow}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Endpoint:   dictionary.DefaultEndpoint,
			Charset:    dictionary.DefaultCharset,
			PageRow:    dictionary.DefaultPageRow,
			IndexWords: 50000,
		},
		Server: ServerConfig{
			MaxLimit:  64,
			MinPrefix: 1,
		},
		CLI: CliConfig{
			DefaultMode: "starts",
			Banned:      []string{},
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/kodic
// 2. ~/Library/Application Support/kodic (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "kodic")
	if utils.IsWritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "kodic")
	if utils.IsWritableDir(macOSPath) {
		return macOSPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/kodic/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their defaults;
// a malformed file falls back to section-by-section recovery.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	cfg.sanitize()
	return cfg, nil
}

// tryPartialParse attempts to salvage individual values from a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		extractDictConfig(section, &cfg.Dict)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	cfg.sanitize()
	return cfg, nil
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "endpoint"); ok {
		dict.Endpoint = val
	}
	if val, ok := utils.ExtractString(data, "charset"); ok {
		dict.Charset = val
	}
	if val, ok := utils.ExtractInt64(data, "page_row"); ok {
		dict.PageRow = val
	}
	if val, ok := utils.ExtractInt64(data, "index_words"); ok {
		dict.IndexWords = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "default_mode"); ok {
		cli.DefaultMode = val
	}
	if val, ok := utils.ExtractStringSlice(data, "banned"); ok {
		cli.Banned = val
	}
}

// sanitize restores defaults for values that would break a lookup.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Dict.Endpoint == "" {
		c.Dict.Endpoint = def.Dict.Endpoint
	}
	if c.Dict.Charset == "" {
		c.Dict.Charset = def.Dict.Charset
	}
	if c.Dict.PageRow <= 0 {
		log.Warnf("Invalid page_row %d, using %d", c.Dict.PageRow, def.Dict.PageRow)
		c.Dict.PageRow = def.Dict.PageRow
	}
	if c.Dict.IndexWords <= 0 {
		c.Dict.IndexWords = def.Dict.IndexWords
	}
	if c.Server.MaxLimit <= 0 {
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MinPrefix < 1 {
		c.Server.MinPrefix = def.Server.MinPrefix
	}
	if _, err := dictionary.ParseSearchMode(c.CLI.DefaultMode); err != nil {
		log.Warnf("Invalid default_mode %q, using %q", c.CLI.DefaultMode, def.CLI.DefaultMode)
		c.CLI.DefaultMode = def.CLI.DefaultMode
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}
