package config

import "time"

// Config is the top-level libdesk configuration.
type Config struct {
	API       APIConfig     `mapstructure:"api" yaml:"api"`
	Storage   StorageConfig `mapstructure:"storage" yaml:"storage"`
	PrefsPath string        `mapstructure:"prefs_path" yaml:"prefs_path"`
	Log       LogConfig     `mapstructure:"log" yaml:"log"`
}

// APIConfig holds library API connection settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"` // 0 means no timeout
}

// StorageConfig selects where the signed-in session is persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // "file" or "sqlite"
	Path    string `mapstructure:"path" yaml:"path"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// EffectiveStoragePath returns the storage path, or the default file for
// the configured backend when none is set.
func (s StorageConfig) EffectiveStoragePath() string {
	if s.Path != "" {
		return ExpandHome(s.Path)
	}
	name := "storage.yml"
	if s.Backend == "sqlite" {
		name = "storage.db"
	}
	return defaultDataPath(name)
}
