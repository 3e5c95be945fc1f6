package scheduler

import (
	"context"

	"github.com/handwave/handwave/core/types"
)

// TaskStore defines the interface for schedule persistence.
type TaskStore interface {
	// Create adds a new task
	Create(task *Task) error

	// Get retrieves a task by ID
	Get(id string) (*Task, error)

	// GetAll retrieves all tasks
	GetAll() ([]*Task, error)

	// GetDue retrieves tasks that are due for execution
	GetDue() ([]*Task, error)

	// Update updates an existing task
	Update(task *Task) error

	// Delete removes a task
	Delete(id string) error

	// LogRun records a task execution
	LogRun(run *TaskRun) error

	// GetRuns retrieves execution history for a task
	GetRuns(taskID string, limit int) ([]*TaskRun, error)

	// Close releases resources
	Close() error
}

// ActionRunner executes a stored custom action by id. Satisfied by
// core/executor, so scheduled runs go through the same load-revalidate-run
// path as on-demand ones.
type ActionRunner interface {
	Run(ctx context.Context, actionID string) (types.ExecutionResult, error)
}
