package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	// No explicit path, no file next to binary or in the data dir for
	// this test user — defaults must come back without error.
	orig := os.Getenv("APPDATA")
	t.Cleanup(func() { os.Setenv("APPDATA", orig) })
	os.Setenv("APPDATA", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppURL != DefaultAppURL {
		t.Errorf("AppURL = %q, want default %q", cfg.AppURL, DefaultAppURL)
	}
	if cfg.Window.Width != DefaultWindowWidth {
		t.Errorf("Width = %d, want %d", cfg.Window.Width, DefaultWindowWidth)
	}
}

func TestLoadExplicitMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perch.json")
	content := `{"app_url":"https://example.test","window":{"width":900}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppURL != "https://example.test" {
		t.Errorf("AppURL = %q", cfg.AppURL)
	}
	if cfg.Window.Width != 900 {
		t.Errorf("Width = %d, want 900", cfg.Window.Width)
	}
	// Unset values keep defaults.
	if cfg.Window.Height != DefaultWindowHeight {
		t.Errorf("Height = %d, want default %d", cfg.Window.Height, DefaultWindowHeight)
	}
	if cfg.Scheme != DefaultScheme {
		t.Errorf("Scheme = %q, want default %q", cfg.Scheme, DefaultScheme)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perch.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"empty app url", func(c *Config) { c.AppURL = "" }, true},
		{"non-http app url", func(c *Config) { c.AppURL = "ftp://x" }, true},
		{"empty scheme", func(c *Config) { c.Scheme = "" }, true},
		{"scheme with space", func(c *Config) { c.Scheme = "pe rch" }, true},
		{"scheme uppercase", func(c *Config) { c.Scheme = "Perch" }, true},
		{"empty instance id", func(c *Config) { c.InstanceID = "" }, true},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, true},
		{"min exceeds initial", func(c *Config) { c.Window.MinWidth = 5000 }, true},
		{"bad scope pattern", func(c *Config) { c.HTTPScope = []string{"gopher://x/*"} }, true},
		{"empty scope ok", func(c *Config) { c.HTTPScope = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
