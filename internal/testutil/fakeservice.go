// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"quicktask/internal/service"
)

// DefaultListID is the ID of the list every FakeService starts with.
const DefaultListID = "default-list"

// Insert records one CreateTask call.
type Insert struct {
	ListID string
	Task   service.Task
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu      sync.Mutex
	lists   []service.TaskList
	inserts []Insert

	// ListCalls counts ListLists calls.
	ListCalls int

	// Error injection for testing
	ListListsErr  error
	CreateTaskErr error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	return &FakeService{
		lists: []service.TaskList{{ID: DefaultListID, Title: "My Tasks"}},
	}
}

// NewEmptyFakeService creates a FakeService without any list.
func NewEmptyFakeService() *FakeService {
	return &FakeService{}
}

// AddList appends a list.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
}

// Inserts returns the recorded CreateTask calls in order.
func (f *FakeService) Inserts() []Insert {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Insert, len(f.inserts))
	copy(result, f.inserts)
	return result
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID string, task service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	task.ID = fmt.Sprintf("task-%d", len(f.inserts)+1)
	f.inserts = append(f.inserts, Insert{ListID: listID, Task: task})
	return task, nil
}

// Connector returns a connector yielding f and counting connections in n.
func (f *FakeService) Connector(n *int) func(ctx context.Context) (service.Service, error) {
	return func(ctx context.Context) (service.Service, error) {
		if n != nil {
			*n++
		}
		return f, nil
	}
}
