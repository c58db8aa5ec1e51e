// Package prefs persists the dashboard's user preferences in
// ~/.config/shopkeep/prefs.toml. Unlike config, prefs are written back by the
// program whenever the user changes them.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/shopkeep/internal/config"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
	Mouse bool   `toml:"mouse"`
}

const (
	DefaultPath  = "~/.config/shopkeep/prefs.toml"
	DefaultTheme = "Nightfox"
)

// Default returns the preferences used on first run.
func Default() Prefs {
	return Prefs{Theme: DefaultTheme, Mouse: true}
}

// Load reads preferences from path, or DefaultPath when blank. Unreadable or
// malformed files degrade to Default; they never block startup.
func Load(path string) Prefs {
	p := Default()
	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}

	var raw struct {
		Theme *string `toml:"theme"`
		Mouse *bool   `toml:"mouse"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return p
	}
	if raw.Theme != nil && strings.TrimSpace(*raw.Theme) != "" {
		p.Theme = strings.TrimSpace(*raw.Theme)
	}
	if raw.Mouse != nil {
		p.Mouse = *raw.Mouse
	}
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return config.ExpandPath(path)
}
