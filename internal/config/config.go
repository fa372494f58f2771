// Package config resolves the quicktask directory, file paths and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// AppName is the application name.
	AppName = "quicktask"

	// ClientSecretFile is the OAuth client secret filename.
	ClientSecretFile = "credentials.json"

	// TokenFile is the persisted credential filename.
	TokenFile = "token.json"

	// LogFile is the log filename.
	LogFile = "quicktask.log"

	// DefaultNote is attached to every submitted task.
	DefaultNote = "Added via Quick Task"
)

// Config holds paths and settings.
type Config struct {
	// Dir holds the client secret, the credential and the log.
	// Defaults to the directory of the executable.
	Dir string `env:"QUICKTASK_DIR"`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"QUICKTASK_LOG_LEVEL" env-default:"debug"`

	// Note is the note attached to submitted tasks.
	Note string `env:"QUICKTASK_NOTE" env-default:"Added via Quick Task"`

	// CallbackPort is the first loopback port tried during consent.
	CallbackPort int `env:"QUICKTASK_CALLBACK_PORT" env-default:"8080"`

	// APITimeout bounds each Tasks API call.
	APITimeout time.Duration `env:"QUICKTASK_API_TIMEOUT" env-default:"30s"`

	// Debug mirrors logs to stderr at debug level.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New reads environment overrides. A non-empty dir takes precedence over
// QUICKTASK_DIR; if both are empty the executable's directory is used.
func New(dir string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	if dir != "" {
		cfg.Dir = dir
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir()
	}
	return cfg, nil
}

// DefaultDir returns the directory containing the running executable,
// falling back to the working directory.
func DefaultDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// ClientSecretPath returns the path to the OAuth client secret file.
func (c *Config) ClientSecretPath() string {
	return filepath.Join(c.Dir, ClientSecretFile)
}

// TokenPath returns the path to the persisted credential.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// LogPath returns the path to the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// HasClientSecret checks if the client secret file exists.
func (c *Config) HasClientSecret() bool {
	_, err := os.Stat(c.ClientSecretPath())
	return err == nil
}

// HasToken checks if the credential file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// TaskNote returns the configured note, or DefaultNote when unset.
func (c *Config) TaskNote() string {
	if c.Note == "" {
		return DefaultNote
	}
	return c.Note
}
