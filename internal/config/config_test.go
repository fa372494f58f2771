package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("QUICKTASK_DIR", "")
	t.Setenv("QUICKTASK_NOTE", "")

	cfg, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != DefaultDir() {
		t.Errorf("expected dir %q, got %q", DefaultDir(), cfg.Dir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.CallbackPort != 8080 {
		t.Errorf("expected callback port 8080, got %d", cfg.CallbackPort)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Errorf("expected api timeout 30s, got %v", cfg.APITimeout)
	}
	if cfg.TaskNote() != DefaultNote {
		t.Errorf("expected note %q, got %q", DefaultNote, cfg.TaskNote())
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv("QUICKTASK_DIR", envDir)
	t.Setenv("QUICKTASK_NOTE", "from env")
	t.Setenv("QUICKTASK_CALLBACK_PORT", "9090")
	t.Setenv("QUICKTASK_API_TIMEOUT", "5s")

	cfg, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != envDir {
		t.Errorf("expected dir %q, got %q", envDir, cfg.Dir)
	}
	if cfg.TaskNote() != "from env" {
		t.Errorf("expected note from env, got %q", cfg.TaskNote())
	}
	if cfg.CallbackPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.CallbackPort)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.APITimeout)
	}
}

func TestNew_FlagDirWins(t *testing.T) {
	t.Setenv("QUICKTASK_DIR", t.TempDir())
	flagDir := t.TempDir()

	cfg, err := New(flagDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != flagDir {
		t.Errorf("expected dir %q, got %q", flagDir, cfg.Dir)
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Dir: "/opt/quicktask"}

	if got := cfg.ClientSecretPath(); got != filepath.Join("/opt/quicktask", "credentials.json") {
		t.Errorf("unexpected client secret path %q", got)
	}
	if got := cfg.TokenPath(); got != filepath.Join("/opt/quicktask", "token.json") {
		t.Errorf("unexpected token path %q", got)
	}
	if got := cfg.LogPath(); got != filepath.Join("/opt/quicktask", "quicktask.log") {
		t.Errorf("unexpected log path %q", got)
	}
	if cfg.HasClientSecret() || cfg.HasToken() {
		t.Error("expected no files in a nonexistent directory")
	}
}
