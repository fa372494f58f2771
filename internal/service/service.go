// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the task backend operations used by quicktask.
// Commands and the form never import the Google SDK directly.
type Service interface {
	// ListLists returns the user's task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// CreateTask inserts task into the list and returns the created task.
	CreateTask(ctx context.Context, listID string, task Task) (Task, error)
}
