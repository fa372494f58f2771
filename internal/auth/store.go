package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned by TokenStore.Load when nothing is persisted.
var ErrNoToken = errors.New("no stored credential")

// TokenStore persists the credential between runs.
type TokenStore interface {
	// Load returns the stored token or ErrNoToken.
	Load() (*oauth2.Token, error)

	// Save replaces the stored token.
	Save(token *oauth2.Token) error

	// Remove deletes the stored token. Removing a missing token is not an error.
	Remove() error
}

// FileStore keeps the token as JSON in a single file with mode 0600.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load implements TokenStore.
func (s *FileStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	return &token, nil
}

// Save implements TokenStore.
func (s *FileStore) Save(token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0600)
}

// Remove implements TokenStore.
func (s *FileStore) Remove() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
