// Package auth acquires, refreshes and persists the Google Tasks credential.
package auth

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TasksScope is the OAuth scope for Google Tasks.
const TasksScope = "https://www.googleapis.com/auth/tasks"

// ErrClientSecretMissing indicates the application secret file does not exist.
var ErrClientSecretMissing = errors.New("client secret not found")

// LoadClientConfig reads a Google OAuth client secret file.
func LoadClientConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrClientSecretMissing, path)
		}
		return nil, fmt.Errorf("failed to read client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid client secret %s: %w", path, err)
	}
	return cfg, nil
}
