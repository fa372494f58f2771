// Package googletasks implements the service.Service interface using Google Tasks API.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"quicktask/internal/auth"
	"quicktask/internal/config"
	"quicktask/internal/service"
)

const (
	// DefaultAPITimeout is used when no timeout is configured.
	DefaultAPITimeout = 30 * time.Second

	// maxLists is the page size of the task list lookup.
	maxLists = 100
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc     *tasks.Service
	timeout time.Duration
	log     zerolog.Logger
}

// Dial loads the client secret, resolves the credential and builds a client.
// prompt receives the consent URL if a consent flow is needed.
func Dial(ctx context.Context, cfg *config.Config, log zerolog.Logger, prompt io.Writer) (*Client, error) {
	oauthConfig, err := auth.LoadClientConfig(cfg.ClientSecretPath())
	if err != nil {
		return nil, err
	}

	flow := auth.NewLocalServerFlow(cfg.CallbackPort, prompt, log)
	return New(ctx, oauthConfig, auth.NewFileStore(cfg.TokenPath()), flow, cfg.APITimeout, log)
}

// New resolves the credential from store (running authz when needed) and
// creates a client over an auto-refreshing HTTP client.
// Extra opts are applied after the authorized HTTP client.
func New(ctx context.Context, oauthConfig *oauth2.Config, store auth.TokenStore, authz auth.Authorizer, timeout time.Duration, log zerolog.Logger, opts ...option.ClientOption) (*Client, error) {
	tokenSource, err := auth.Resolve(ctx, oauthConfig, store, authz, log)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	return newClient(ctx, timeout, log, opts...)
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint
// (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return newClient(ctx, DefaultAPITimeout, zerolog.Nop(), opts...)
}

func newClient(ctx context.Context, timeout time.Duration, log zerolog.Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}
	return &Client{svc: svc, timeout: timeout, log: log}, nil
}

// ListLists returns the first page of task lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Tasklists.List().MaxResults(maxLists).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	result := make([]service.TaskList, 0, len(resp.Items))
	for _, list := range resp.Items {
		result = append(result, service.TaskList{
			ID:    list.Id,
			Title: list.Title,
		})
	}
	c.log.Debug().Int("count", len(result)).Msg("fetched task lists")
	return result, nil
}

// CreateTask inserts a task into the specified list.
func (c *Client) CreateTask(ctx context.Context, listID string, task service.Task) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	created, err := c.svc.Tasks.Insert(listID, &tasks.Task{
		Title: task.Title,
		Notes: task.Notes,
	}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}

	return service.Task{
		ID:    created.Id,
		Title: created.Title,
		Notes: created.Notes,
	}, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	// A refresh rejected during a call surfaces from the transport.
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return authError(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return authError(err)
		case http.StatusNotFound:
			return fmt.Errorf("not found: %w", err)
		}
	}

	return err
}

func authError(err error) error {
	return fmt.Errorf("%w (delete %s and try again): %w", auth.ErrAuthFailed, config.TokenFile, err)
}
