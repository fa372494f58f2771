// Package quickadd submits a typed title as a new task.
package quickadd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"quicktask/internal/service"
)

// ErrNoTaskLists is returned when the account has no task list to add to.
var ErrNoTaskLists = errors.New("no task lists found")

// Connector resolves the credential and returns a ready service.
type Connector func(ctx context.Context) (service.Service, error)

// Submitter adds tasks to the first task list of the account.
type Submitter struct {
	connect Connector
	note    string
	log     zerolog.Logger
}

// NewSubmitter returns a Submitter. connect is only called for non-blank titles.
func NewSubmitter(connect Connector, note string, log zerolog.Logger) *Submitter {
	return &Submitter{connect: connect, note: note, log: log}
}

// Submit adds title to the first task list returned by the service.
// A blank title is ignored and reports added == false with a nil error.
func (s *Submitter) Submit(ctx context.Context, title string) (added bool, err error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.log.Info().Msg("empty task, ignoring")
		return false, nil
	}

	s.log.Info().Msg("connecting to task service")
	svc, err := s.connect(ctx)
	if err != nil {
		return false, err
	}

	s.log.Info().Msg("fetching task lists")
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch task lists: %w", err)
	}
	if len(lists) == 0 {
		return false, ErrNoTaskLists
	}
	target := lists[0]

	s.log.Info().Str("list", target.Title).Msg("adding task")
	created, err := svc.CreateTask(ctx, target.ID, service.Task{
		Title: title,
		Notes: s.note,
	})
	if err != nil {
		return false, fmt.Errorf("failed to add task: %w", err)
	}

	s.log.Info().Str("task", created.ID).Msg("task added")
	return true, nil
}
