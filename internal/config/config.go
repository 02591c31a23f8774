package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Paths   PathsConfig   `toml:"paths"`
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
}

type EditorConfig struct {
	Name             string        `toml:"name"`
	AutosaveInterval time.Duration `toml:"autosave_interval"` // 0 disables autosave
	StartTime        int64         // set at boot, not from config
}

type PathsConfig struct {
	Assets  string `toml:"assets"`
	Scripts string `toml:"scripts"`
	Scenes  string `toml:"scenes"`
}

type HistoryConfig struct {
	Depth int `toml:"depth"` // 0 = unbounded
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr only
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Editor.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration, used when no config file exists.
func Default() *Config {
	cfg := defaults()
	cfg.Editor.StartTime = time.Now().Unix()
	return cfg
}

func defaults() *Config {
	return &Config{
		Editor: EditorConfig{
			Name:             "Keel Editor",
			AutosaveInterval: 5 * time.Minute,
		},
		Paths: PathsConfig{
			Assets:  "assets",
			Scripts: "scripts",
			Scenes:  "scenes",
		},
		History: HistoryConfig{
			Depth: 512,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
