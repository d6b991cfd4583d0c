/*
Package config manages TOML config for khmertype.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/khmertype/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Session SessionConfig `toml:"session"`
	Service ServiceConfig `toml:"service"`
	Dict    DictConfig    `toml:"dict"`
	UI      UIConfig      `toml:"ui"`
}

// SessionConfig tunes the suggestion cycle.
type SessionConfig struct {
	DebounceMs    int `toml:"debounce_ms"`
	MaxCandidates int `toml:"max_candidates"`
	MaxTextLen    int `toml:"max_text_len"`
}

// ServiceConfig points at the prediction service.
type ServiceConfig struct {
	URL       string `toml:"url"`
	TimeoutMs int    `toml:"timeout_ms"`
}

// DictConfig holds offline dictionary options.
type DictConfig struct {
	Path     string `toml:"path"`
	MaxWords int    `toml:"max_words"`
}

// UIConfig holds terminal front-end options.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			DebounceMs:    125,
			MaxCandidates: 5,
			MaxTextLen:    512,
		},
		Service: ServiceConfig{
			URL:       "http://127.0.0.1:8000/suggest",
			TimeoutMs: 2000,
		},
		Dict: DictConfig{
			Path:     "data/khmer_freq.tsv",
			MaxWords: 50000,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// Validate clamps out-of-range values back to usable ones instead of
// refusing to start
func (c *Config) Validate() {
	if c.Session.DebounceMs < 16 {
		log.Warnf("debounce_ms %d too low, clamping to 16", c.Session.DebounceMs)
		c.Session.DebounceMs = 16
	}
	if c.Session.MaxCandidates < 1 || c.Session.MaxCandidates > 9 {
		log.Warnf("max_candidates %d out of range, using 5", c.Session.MaxCandidates)
		c.Session.MaxCandidates = 5
	}
	if c.Session.MaxTextLen < 1 {
		c.Session.MaxTextLen = 512
	}
	if c.Service.TimeoutMs < 100 {
		log.Warnf("timeout_ms %d too low, clamping to 100", c.Service.TimeoutMs)
		c.Service.TimeoutMs = 100
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		log.Warnf("Unknown theme %q, using dark", c.UI.Theme)
		c.UI.Theme = "dark"
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "khmertype")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "khmertype")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
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
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/khmertype/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				config.Validate()
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	config.Validate()
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages valid sections from a broken TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if sessionSection, ok := utils.ExtractSection(tempConfig, "session"); ok {
		extractSessionConfig(sessionSection, &config.Session)
	}
	if serviceSection, ok := utils.ExtractSection(tempConfig, "service"); ok {
		extractServiceConfig(serviceSection, &config.Service)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if uiSection, ok := utils.ExtractSection(tempConfig, "ui"); ok {
		extractUIConfig(uiSection, &config.UI)
	}
	return config, nil
}

// extractSessionConfig extracts session configuration from a map
func extractSessionConfig(data map[string]any, session *SessionConfig) {
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		session.DebounceMs = val
	}
	if val, ok := utils.ExtractInt64(data, "max_candidates"); ok {
		session.MaxCandidates = val
	}
	if val, ok := utils.ExtractInt64(data, "max_text_len"); ok {
		session.MaxTextLen = val
	}
}

// extractServiceConfig extracts service configuration from a map
func extractServiceConfig(data map[string]any, service *ServiceConfig) {
	if val, ok := utils.ExtractString(data, "url"); ok {
		service.URL = val
	}
	if val, ok := utils.ExtractInt64(data, "timeout_ms"); ok {
		service.TimeoutMs = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
}

// extractUIConfig extracts UI config from a map
func extractUIConfig(data map[string]any, ui *UIConfig) {
	if val, ok := utils.ExtractString(data, "theme"); ok {
		ui.Theme = val
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
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// UpdateTheme changes the UI theme and persists it, mirroring how the
// original front-end remembered its dark/light preference
func (c *Config) UpdateTheme(configPath, theme string) error {
	c.UI.Theme = theme
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
