package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultAutoTagLimit = 3
	defaultModel        = "auto"
	defaultView         = "notes"
)

// Config holds the unified application configuration.
type Config struct {
	DataDir     string `json:"data_dir"`
	AIEnabled   bool   `json:"ai_auto_tag"`
	TagLimit    int    `json:"auto_tag_limit"`
	Model       string `json:"ai_model"`
	DefaultView string `json:"default_view"`
}

// Settings represents the config file structure.
type Settings struct {
	DataDir     string `json:"data_dir,omitempty"`
	AIEnabled   *bool  `json:"ai_auto_tag,omitempty"`
	TagLimit    int    `json:"auto_tag_limit,omitempty"`
	Model       string `json:"ai_model,omitempty"`
	DefaultView string `json:"default_view,omitempty"`
}

// CLIFlags holds parsed CLI flags.
type CLIFlags struct {
	DataDir string
	AIMode  string // "on", "off", or "" for unset
}

var globalConfig *Config

// Load loads configuration with priority: CLI flags > env vars > config file > default.
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		TagLimit:    defaultAutoTagLimit,
		Model:       defaultModel,
		DefaultView: defaultView,
	}

	// Config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.DataDir != "" {
				cfg.DataDir = expandPath(fileConfig.DataDir)
			}
			if fileConfig.AIEnabled != nil {
				cfg.AIEnabled = *fileConfig.AIEnabled
			}
			if fileConfig.TagLimit > 0 {
				cfg.TagLimit = fileConfig.TagLimit
			}
			if fileConfig.Model != "" {
				cfg.Model = fileConfig.Model
			}
			if fileConfig.DefaultView != "" {
				cfg.DefaultView = fileConfig.DefaultView
			}
		}
	}

	// Environment variables override the config file
	if envDir := os.Getenv("QUICKNOTES_DIR"); envDir != "" {
		cfg.DataDir = expandPath(envDir)
	}
	if envAI := os.Getenv("QUICKNOTES_AI_AUTO_TAG"); envAI != "" {
		cfg.AIEnabled = parseBool(envAI)
	}
	if envLimit := os.Getenv("QUICKNOTES_AUTO_TAG_LIMIT"); envLimit != "" {
		if n, err := strconv.Atoi(envLimit); err == nil && n > 0 {
			cfg.TagLimit = n
		}
	}
	if envModel := os.Getenv("QUICKNOTES_AI_MODEL"); envModel != "" {
		cfg.Model = envModel
	}

	// CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	switch flags.AIMode {
	case "on":
		cfg.AIEnabled = true
	case "off":
		cfg.AIEnabled = false
	}

	// Default data directory if nothing configured
	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the loaded config.
func Get() *Config {
	return globalConfig
}

// IsAIMode reports whether AI auto-tagging is enabled.
func (c *Config) IsAIMode() bool { return c.AIEnabled }

// AutoTagLimit returns the maximum number of tags assigned per note.
func (c *Config) AutoTagLimit() int {
	if c.TagLimit <= 0 {
		return defaultAutoTagLimit
	}
	return c.TagLimit
}

// WithoutAI returns a copy with AI auto-tagging disabled. One-shot
// invocations use it: the process exits before an async AI reply could
// land, so they stick to the keyword strategy.
func (c *Config) WithoutAI() *Config {
	copied := *c
	copied.AIEnabled = false
	return &copied
}

// SelectedModelKey returns the configured AI model key ("auto" resolves at
// call time).
func (c *Config) SelectedModelKey() string {
	if c.Model == "" {
		return defaultModel
	}
	return c.Model
}

// GetDefaultDataDir returns the default data directory path.
func GetDefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "quicknotes"), nil
}

// getConfigPath returns the path to the configuration file.
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "quicknotes", "config.json"), nil
}

// EnsureConfigFile creates a default config file if none exists.
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	defaultDir, err := GetDefaultDataDir()
	if err != nil {
		return err
	}
	settings := Settings{
		DataDir:     defaultDir,
		TagLimit:    defaultAutoTagLimit,
		Model:       defaultModel,
		DefaultView: defaultView,
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
