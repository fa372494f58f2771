package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// ErrAuthFailed marks failures to obtain a usable credential.
var ErrAuthFailed = errors.New("authorization failed")

// Authorizer runs an interactive consent flow and returns a fresh token.
type Authorizer interface {
	Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// Resolve returns a token source for the stored credential.
//
// A valid stored token is used as is. An expired token with a refresh token
// is refreshed. Anything else, including a refresh rejected by the
// authorization server, runs the consent flow. Every new token, including
// refreshes performed later through the returned source, is saved to store.
func Resolve(ctx context.Context, cfg *oauth2.Config, store TokenStore, authz Authorizer, log zerolog.Logger) (oauth2.TokenSource, error) {
	token, err := store.Load()
	switch {
	case errors.Is(err, ErrNoToken):
		log.Info().Msg("no stored credential")
		token = nil
	case err != nil:
		log.Warn().Err(err).Msg("ignoring unreadable credential")
		token = nil
	}

	current, err := acquire(ctx, cfg, store, authz, token, log)
	if err != nil {
		return nil, err
	}

	return &persistingSource{
		base:  cfg.TokenSource(ctx, current),
		store: store,
		last:  current.AccessToken,
		log:   log,
	}, nil
}

func acquire(ctx context.Context, cfg *oauth2.Config, store TokenStore, authz Authorizer, token *oauth2.Token, log zerolog.Logger) (*oauth2.Token, error) {
	if token != nil && token.Valid() {
		log.Debug().Time("expiry", token.Expiry).Msg("using stored credential")
		return token, nil
	}

	if token != nil && token.RefreshToken != "" {
		log.Info().Msg("refreshing expired credential")
		fresh, err := cfg.TokenSource(ctx, token).Token()
		if err == nil {
			if err := store.Save(fresh); err != nil {
				return nil, fmt.Errorf("failed to save credential: %w", err)
			}
			return fresh, nil
		}

		var rerr *oauth2.RetrieveError
		if !errors.As(err, &rerr) {
			return nil, fmt.Errorf("%w: refresh: %w", ErrAuthFailed, err)
		}
		log.Warn().Err(err).Msg("refresh rejected, starting consent flow")
	}

	if authz == nil {
		return nil, fmt.Errorf("%w: not logged in", ErrAuthFailed)
	}

	log.Info().Msg("starting consent flow")
	fresh, err := authz.Authorize(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	if err := store.Save(fresh); err != nil {
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}
	log.Info().Msg("credential saved")
	return fresh, nil
}

// persistingSource saves tokens that differ from the last one seen.
type persistingSource struct {
	mu    sync.Mutex
	base  oauth2.TokenSource
	store TokenStore
	last  string
	log   zerolog.Logger
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		if err := s.store.Save(token); err != nil {
			s.log.Error().Err(err).Msg("failed to save refreshed credential")
		} else {
			s.log.Info().Msg("refreshed credential saved")
		}
		s.last = token.AccessToken
	}
	return token, nil
}
