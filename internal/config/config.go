package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/perchhq/perch/internal/paths"
)

// Defaults applied when the config file omits a value (or is absent
// entirely — perch must start unconfigured).
const (
	DefaultAppURL       = "https://app.perch.dev"
	DefaultScheme       = "perch"
	DefaultInstanceID   = "perch-single-instance"
	DefaultWindowWidth  = 1100
	DefaultWindowHeight = 760
	DefaultMinWidth     = 800
	DefaultMinHeight    = 560
)

// Window holds the main window's initial geometry.
type Window struct {
	Width     int `json:"width,omitempty"`
	Height    int `json:"height,omitempty"`
	MinWidth  int `json:"min_width,omitempty"`
	MinHeight int `json:"min_height,omitempty"`
}

// Config is the top-level perch configuration.
type Config struct {
	// AppURL is the hosted web application the window navigates to.
	AppURL string `json:"app_url,omitempty"`
	// Scheme is the deep-link URL scheme handled by this app.
	Scheme string `json:"scheme,omitempty"`
	// InstanceID identifies the single-instance lock across processes.
	InstanceID string `json:"instance_id,omitempty"`
	Window     Window `json:"window,omitempty"`
	// HTTPScope lists URL patterns the frontend may fetch, e.g.
	// "https://api.perch.dev/*". Empty means no outbound access.
	HTTPScope []string `json:"http_scope,omitempty"`
	// EventLog enables the SQLite lifecycle event log.
	EventLog bool `json:"event_log,omitempty"`
}

// UnmarshalJSON sets defaults then decodes the JSON structure. Go's
// json.Unmarshal merges into existing struct fields, so only values
// present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AppURL:     DefaultAppURL,
		Scheme:     DefaultScheme,
		InstanceID: DefaultInstanceID,
		Window: Window{
			Width:     DefaultWindowWidth,
			Height:    DefaultWindowHeight,
			MinWidth:  DefaultMinWidth,
			MinHeight: DefaultMinHeight,
		},
		HTTPScope: []string{DefaultAppURL + "/*"},
	}
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. perch.json next to the running binary
//  3. ~/.config/perch/perch.json (or %APPDATA%\perch\perch.json)
//
// A missing file is not an error: the built-in defaults are returned.
// An explicit path that cannot be read is an error.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	p := filepath.Join(paths.DataDir(), paths.ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		return readConfig(p)
	}

	return Default(), nil
}

// Validate checks the loaded configuration for values the bootstrapper
// cannot work with.
func Validate(cfg Config) error {
	if cfg.AppURL == "" {
		return fmt.Errorf("app_url must not be empty")
	}
	if !strings.HasPrefix(cfg.AppURL, "http://") && !strings.HasPrefix(cfg.AppURL, "https://") {
		return fmt.Errorf("app_url %q must be http or https", cfg.AppURL)
	}
	if cfg.Scheme == "" {
		return fmt.Errorf("scheme must not be empty")
	}
	for _, r := range cfg.Scheme {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '+' && r != '.' {
			return fmt.Errorf("scheme %q contains invalid character %q", cfg.Scheme, r)
		}
	}
	if cfg.InstanceID == "" {
		return fmt.Errorf("instance_id must not be empty")
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.MinWidth > cfg.Window.Width || cfg.Window.MinHeight > cfg.Window.Height {
		return fmt.Errorf("window minimum size exceeds initial size")
	}
	for _, pat := range cfg.HTTPScope {
		if !strings.HasPrefix(pat, "http://") && !strings.HasPrefix(pat, "https://") {
			return fmt.Errorf("http_scope pattern %q must be http or https", pat)
		}
	}
	return nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
