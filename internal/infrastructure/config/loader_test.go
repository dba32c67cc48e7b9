package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/blackline/internal/domain"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
	if cfg.Blackd.Port != domain.DefaultBlackdPort {
		t.Errorf("Blackd.Port = %d, want %d", cfg.Blackd.Port, domain.DefaultBlackdPort)
	}
	if cfg.Cache.MaxEntries != domain.DefaultMaxCacheEntries {
		t.Errorf("Cache.MaxEntries = %d, want %d", cfg.Cache.MaxEntries, domain.DefaultMaxCacheEntries)
	}
	if cfg.Black.DefaultEncoding != domain.DefaultEncoding {
		t.Errorf("DefaultEncoding = %q, want %q", cfg.Black.DefaultEncoding, domain.DefaultEncoding)
	}
}

func TestLoadParsesCustomSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `black:
  command: /opt/black
  line_length: 100
  fast: true
  target_versions: [py38, py39]
blackd:
  enabled: true
  port: 9000
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Black.Command != "/opt/black" {
		t.Errorf("Command = %q", cfg.Black.Command)
	}
	if cfg.Black.LineLength != 100 {
		t.Errorf("LineLength = %d", cfg.Black.LineLength)
	}
	if !cfg.Blackd.Enabled || cfg.Blackd.Port != 9000 {
		t.Errorf("Blackd = %+v", cfg.Blackd)
	}
	// Untouched fields are still hydrated.
	if cfg.Blackd.Host != domain.DefaultBlackdHost {
		t.Errorf("Host = %q, want default", cfg.Blackd.Host)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "broken yaml", raw: "black: ["},
		{name: "negative line length", raw: "black:\n  line_length: -1\n"},
		{name: "port out of range", raw: "blackd:\n  port: 70000\n"},
		{name: "bad target version", raw: "black:\n  target_versions: [foo]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg := Default()
	cfg.Black.LineLength = 120
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Black.LineLength != 120 {
		t.Errorf("LineLength = %d, want 120", loaded.Black.LineLength)
	}
}

func TestPathHonorsEnvironmentOverride(t *testing.T) {
	t.Setenv("BLACKLINE_CONFIG", "/etc/blackline/config.yaml")
	loader := NewFileLoader("")
	if got := loader.Path(); got != "/etc/blackline/config.yaml" {
		t.Errorf("Path = %q", got)
	}
}
