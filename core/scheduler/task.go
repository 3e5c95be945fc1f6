package scheduler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

type TaskStatus string

const (
	TaskStatusActive TaskStatus = "active"
	TaskStatusPaused TaskStatus = "paused"
)

type ScheduleType string

const (
	ScheduleTypeCron     ScheduleType = "cron"
	ScheduleTypeInterval ScheduleType = "interval"
	ScheduleTypeOnce     ScheduleType = "once"
)

// Task schedules a stored custom action: run the action identified by
// ActionID whenever the schedule fires.
type Task struct {
	ID            string       `json:"id"`
	ActionID      string       `json:"action_id"`
	ScheduleType  ScheduleType `json:"schedule_type"`
	ScheduleValue string       `json:"schedule_value"`
	Status        TaskStatus   `json:"status"`
	NextRun       time.Time    `json:"next_run"`
	LastRun       *time.Time   `json:"last_run,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TaskRun records a single execution of a scheduled task.
type TaskRun struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	RunAt      time.Time `json:"run_at"`
	DurationMs int64     `json:"duration_ms"`
	Status     string    `json:"status"` // "success" or "error"
	Result     string    `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// NewTask creates a schedule for the given action.
func NewTask(actionID string, scheduleType ScheduleType, scheduleValue string) (*Task, error) {
	task := &Task{
		ID:            uuid.New().String(),
		ActionID:      actionID,
		ScheduleType:  scheduleType,
		ScheduleValue: scheduleValue,
		Status:        TaskStatusActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := task.CalculateNextRun(); err != nil {
		return nil, err
	}

	return task, nil
}

// CalculateNextRun derives the next firing time from the schedule.
func (t *Task) CalculateNextRun() error {
	now := time.Now()

	switch t.ScheduleType {
	case ScheduleTypeCron:
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		schedule, err := parser.Parse(t.ScheduleValue)
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		t.NextRun = schedule.Next(now)

	case ScheduleTypeInterval:
		intervalMs, err := strconv.ParseInt(t.ScheduleValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid interval: %w", err)
		}
		if t.LastRun != nil {
			t.NextRun = t.LastRun.Add(time.Duration(intervalMs) * time.Millisecond)
		} else {
			t.NextRun = now.Add(time.Duration(intervalMs) * time.Millisecond)
		}

	case ScheduleTypeOnce:
		nextRun, err := time.Parse(time.RFC3339, t.ScheduleValue)
		if err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
		t.NextRun = nextRun

	default:
		return fmt.Errorf("unknown schedule type: %s", t.ScheduleType)
	}

	return nil
}

// IsDue checks if the task should be executed now.
func (t *Task) IsDue() bool {
	return t.Status == TaskStatusActive && time.Now().After(t.NextRun)
}

// NewTaskRun creates a run record for the given task.
func NewTaskRun(taskID string) *TaskRun {
	return &TaskRun{
		ID:     uuid.New().String(),
		TaskID: taskID,
		RunAt:  time.Now(),
	}
}
