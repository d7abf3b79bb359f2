package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Library.OwnerID != "local" {
		t.Errorf("OwnerID = %q, want local", config.Library.OwnerID)
	}
	if config.Database.Path == "" {
		t.Error("expected a default database path")
	}
	if config.Import.RateLimit <= 0 {
		t.Errorf("RateLimit = %v, want > 0", config.Import.RateLimit)
	}
	if config.Remote.Enabled {
		t.Error("remote store should be disabled by default")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[library]
owner_id = "tester"

[database]
path = "test.db"
max_open_conns = 5

[remote]
enabled = true
base_url = "https://scores.example.com"
api_key = "secret"

[import]
rate_limit = 10.0
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if config.Library.OwnerID != "tester" {
			t.Errorf("OwnerID = %q", config.Library.OwnerID)
		}
		if config.Database.Path != "test.db" || config.Database.MaxOpenConns != 5 {
			t.Errorf("Database = %+v", config.Database)
		}
		if !config.Remote.Enabled || config.Remote.BaseURL != "https://scores.example.com" {
			t.Errorf("Remote = %+v", config.Remote)
		}
		if config.Import.RateLimit != 10.0 {
			t.Errorf("RateLimit = %v", config.Import.RateLimit)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile() error = %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.Library.OwnerID != "local" {
			t.Errorf("OwnerID = %q, want local", config.Library.OwnerID)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}
