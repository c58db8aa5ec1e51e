package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config holds the dashboard's startup settings.
type Config struct {
	APIURL    string
	ExportDir string
	LogFile   string // empty disables logging
	LogLevel  string
}

const (
	DefaultPath      = "~/.config/shopkeep/config.toml"
	DefaultAPIURL    = "https://api.escuelajs.co/api/v1/products"
	DefaultExportDir = "."
	DefaultLogFile   = "~/.local/state/shopkeep/shopkeep.log"
	DefaultLogLevel  = "info"
)

type fileConfig struct {
	APIURL    *string `toml:"api_url"`
	ExportDir *string `toml:"export_dir"`
	LogFile   *string `toml:"log_file"`
	LogLevel  *string `toml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		ExportDir: mustExpand(DefaultExportDir),
		LogFile:   mustExpand(DefaultLogFile),
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads the config at path, or DefaultPath when path is blank. A
// missing file yields Default.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := trimmed(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := trimmed(raw.ExportDir); v != "" {
		cfg.ExportDir = mustExpand(v)
	}
	// log_file = "" is an explicit request to discard logs.
	if raw.LogFile != nil {
		cfg.LogFile = ""
		if v := trimmed(raw.LogFile); v != "" {
			cfg.LogFile = mustExpand(v)
		}
	}
	if v := trimmed(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks fields that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config log_level: %w", err)
	}
	return nil
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", fmt.Errorf("path is empty")
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
