package service

// Task is a single to-do item. Tasks are built per submission and never
// stored locally.
type Task struct {
	ID    string
	Title string
	Notes string
}

// TaskList is a remote task container.
type TaskList struct {
	ID    string
	Title string
}
