package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = "chatmorph"
	configFileName = "config.json"
)

// AppConfig holds the persisted view defaults. Booleans are pointers so an
// absent field keeps its default (true) while an explicit false sticks.
type AppConfig struct {
	DiffMode    string `json:"diff_mode"`
	ShowRemoved *bool  `json:"show_removed"`
	Animate     *bool  `json:"animate"`
}

func (c AppConfig) ShowRemovedOrDefault() bool {
	if c.ShowRemoved == nil {
		return true
	}
	return *c.ShowRemoved
}

func (c AppConfig) AnimateOrDefault() bool {
	if c.Animate == nil {
		return true
	}
	return *c.Animate
}

func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

func LoadFromPath(path string) (AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.DiffMode = strings.TrimSpace(cfg.DiffMode)
	switch cfg.DiffMode {
	case "", "words", "chars":
	default:
		return AppConfig{}, fmt.Errorf("diff_mode %q must be \"words\" or \"chars\"", cfg.DiffMode)
	}

	return cfg, nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
