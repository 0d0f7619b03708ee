// Package config loads editor settings from
// ~/.config/sitebuilder/config.yaml and SITEBUILDER_* environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "SITEBUILDER"

const (
	defaultAutosaveInterval = "@every 30s"
	defaultUndoLimit        = 40
	defaultViewMode         = "desktop"
	defaultPreviewAddr      = ":8787"
)

type Config struct {
	DataDir          string `mapstructure:"data_dir"`
	DBPath           string `mapstructure:"db_path"`
	PresetsDir       string `mapstructure:"presets_dir"`
	AutosaveInterval string `mapstructure:"autosave_interval"`
	UndoLimit        int    `mapstructure:"undo_limit"`
	DefaultViewMode  string `mapstructure:"default_view_mode"`
	PreviewAddr      string `mapstructure:"preview_addr"`
	MCPAutoApprove   bool   `mapstructure:"mcp_auto_approve"`
}

// Load reads the config file if present; a missing file means defaults.
// An explicit path overrides the default location.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "sitebuilder"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", defaultDataDir(home))
	v.SetDefault("db_path", "")
	v.SetDefault("presets_dir", "")
	v.SetDefault("autosave_interval", defaultAutosaveInterval)
	v.SetDefault("undo_limit", defaultUndoLimit)
	v.SetDefault("default_view_mode", defaultViewMode)
	v.SetDefault("preview_addr", defaultPreviewAddr)
	v.SetDefault("mcp_auto_approve", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && os.IsNotExist(err)) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return withPaths(&cfg), nil
}

// Default is the built-in configuration, used when Load fails. Without a
// home directory the data lives under the system temp dir.
func Default() *Config {
	dataDir := filepath.Join(os.TempDir(), "sitebuilder")
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = defaultDataDir(home)
	}
	return withPaths(&Config{
		DataDir:          dataDir,
		AutosaveInterval: defaultAutosaveInterval,
		UndoLimit:        defaultUndoLimit,
		DefaultViewMode:  defaultViewMode,
		PreviewAddr:      defaultPreviewAddr,
	})
}

func defaultDataDir(home string) string {
	return filepath.Join(home, ".local", "share", "sitebuilder")
}

func withPaths(cfg *Config) *Config {
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "sitebuilder.db")
	}
	if cfg.PresetsDir == "" {
		cfg.PresetsDir = filepath.Join(cfg.DataDir, "layouts")
	}
	return cfg
}
