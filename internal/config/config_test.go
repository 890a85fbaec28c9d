package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/tasklist/internal/config"
	"github.com/amonks/tasklist/internal/testsupport"
)

func writeGlobalConfig(t *testing.T, homeDir, content string) {
	t.Helper()

	dir := filepath.Join(homeDir, ".config", "tasklist")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.Storage.Dir != "" || cfg.Storage.Key != "" {
		t.Errorf("expected empty storage config, got %+v", cfg.Storage)
	}

	if len(cfg.Sections.Defaults) != 0 {
		t.Errorf("expected no default sections, got %v", cfg.Sections.Defaults)
	}
}

func TestLoad_Global(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)

	writeGlobalConfig(t, homeDir, `
[storage]
dir = "~/tasks"
key = " myTasks "

[sections]
defaults = ["Inbox", "  ", "Errands"]

[log]
level = "debug"
format = "json"
`)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Key != "myTasks" {
		t.Errorf("Key = %q, expected %q", cfg.Storage.Key, "myTasks")
	}
	if got := strings.Join(cfg.Sections.Defaults, ","); got != "Inbox,Errands" {
		t.Errorf("Defaults = %q, expected %q", got, "Inbox,Errands")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}

	dir, err := cfg.StateDir()
	if err != nil {
		t.Fatalf("state dir: %v", err)
	}
	if dir != filepath.Join(homeDir, "tasks") {
		t.Errorf("StateDir = %q, expected %q", dir, filepath.Join(homeDir, "tasks"))
	}
}

func TestLoad_ExplicitOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)

	writeGlobalConfig(t, homeDir, `
[storage]
key = "global"

[sections]
defaults = ["Global"]

[log]
level = "info"
`)

	explicitPath := filepath.Join(t.TempDir(), "tasklist.toml")
	explicit := `
[storage]
key = "explicit"

[log]
level = ""
`
	if err := os.WriteFile(explicitPath, []byte(explicit), 0644); err != nil {
		t.Fatalf("failed to write explicit config: %v", err)
	}

	cfg, err := config.Load(explicitPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Key != "explicit" {
		t.Errorf("Key = %q, expected explicit override", cfg.Storage.Key)
	}
	if cfg.Log.Level != "" {
		t.Errorf("Level = %q, expected explicit empty value to win", cfg.Log.Level)
	}
	if len(cfg.Sections.Defaults) != 1 || cfg.Sections.Defaults[0] != "Global" {
		t.Errorf("Defaults = %v, expected global value", cfg.Sections.Defaults)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	testsupport.SetupTestHome(t)

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, "[storage\ndir = 1")

	if _, err := config.Load(""); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, "[storage]\ndirectory = \"/tmp\"\n")

	_, err := config.Load("")
	if err == nil {
		t.Fatal("expected unknown key error")
	}
	if !strings.Contains(err.Error(), "storage.directory") {
		t.Errorf("expected error to name the key, got %v", err)
	}
}

func TestStateDir_EnvWins(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	override := filepath.Join(t.TempDir(), "override")
	t.Setenv("TASKLIST_STATE_DIR", override)

	cfg := &config.Config{Storage: config.Storage{Dir: "~/ignored"}}
	dir, err := cfg.StateDir()
	if err != nil {
		t.Fatalf("state dir: %v", err)
	}
	if dir != override {
		t.Errorf("StateDir = %q, expected %q", dir, override)
	}

	t.Setenv("TASKLIST_STATE_DIR", "")
	dir, err = (&config.Config{}).StateDir()
	if err != nil {
		t.Fatalf("state dir: %v", err)
	}
	if dir != filepath.Join(homeDir, ".local", "state", "tasklist") {
		t.Errorf("StateDir = %q, expected default", dir)
	}
}
