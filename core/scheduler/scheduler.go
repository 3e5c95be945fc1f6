// Package scheduler runs stored custom actions on cron, interval or
// one-shot schedules.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/mudler/xlog"
)

// Scheduler polls the store for due tasks and hands each one to the action
// runner on its own goroutine. A task that is still running when its next
// slot fires is skipped, not queued.
type Scheduler struct {
	store        TaskStore
	runner       ActionRunner
	pollInterval time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.RWMutex
	runningTasks map[string]struct{}
}

// NewScheduler creates a scheduler with the given store and runner.
func NewScheduler(store TaskStore, runner ActionRunner, pollInterval time.Duration) *Scheduler {
	return &Scheduler{
		store:        store,
		runner:       runner,
		pollInterval: pollInterval,
		runningTasks: make(map[string]struct{}),
	}
}

// Start begins the polling loop.
func (s *Scheduler) Start() {
	if s.ctx != nil {
		xlog.Warn("Scheduler already started")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.ctx = ctx
	s.cancel = cancel
	s.wg.Add(1)
	go s.run()
	xlog.Info("Action scheduler started", "poll_interval", s.pollInterval)
}

// Stop gracefully stops the scheduler, waiting for in-flight runs.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.store.Close()
	xlog.Info("Action scheduler stopped")
	s.cancel = nil
	s.ctx = nil
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.processDueTasks()
		}
	}
}

func (s *Scheduler) processDueTasks() {
	tasks, err := s.store.GetDue()
	if err != nil {
		xlog.Error("Failed to get due tasks", "error", err)
		return
	}

	if len(tasks) > 0 {
		xlog.Debug("Processing due tasks", "count", len(tasks))
	}

	for _, task := range tasks {
		s.mu.RLock()
		_, running := s.runningTasks[task.ID]
		s.mu.RUnlock()

		if running {
			xlog.Warn("Task already running, skipping", "task_id", task.ID)
			continue
		}

		s.wg.Add(1)
		go s.executeTask(task)
	}
}

func (s *Scheduler) executeTask(task *Task) {
	defer s.wg.Done()

	s.mu.Lock()
	s.runningTasks[task.ID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.runningTasks, task.ID)
		s.mu.Unlock()
	}()

	xlog.Info("Running scheduled action", "task_id", task.ID, "action_id", task.ActionID)

	startTime := time.Now()
	run := NewTaskRun(task.ID)

	result, err := s.runner.Run(s.ctx, task.ActionID)

	run.DurationMs = time.Since(startTime).Milliseconds()

	if err != nil {
		run.Status = "error"
		run.Error = err.Error()
		xlog.Error("Scheduled action failed", "task_id", task.ID, "action_id", task.ActionID, "error", err)
	} else {
		run.Status = "success"
		run.Result = result.Prompt
		xlog.Info("Scheduled action succeeded", "task_id", task.ID, "duration_ms", run.DurationMs)
	}

	if err := s.store.LogRun(run); err != nil {
		xlog.Error("Failed to log task run", "task_id", task.ID, "error", err)
	}

	now := time.Now()
	task.LastRun = &now
	task.UpdatedAt = now

	// One-shot tasks are removed after their single attempt.
	if task.ScheduleType == ScheduleTypeOnce {
		if err := s.store.Delete(task.ID); err != nil {
			xlog.Error("Failed to delete one-shot task", "task_id", task.ID, "error", err)
		}
		return
	}

	if err := task.CalculateNextRun(); err != nil {
		xlog.Error("Failed to calculate next run, pausing task", "task_id", task.ID, "error", err)
		task.Status = TaskStatusPaused
	}

	if err := s.store.Update(task); err != nil {
		xlog.Error("Failed to update task", "task_id", task.ID, "error", err)
	}
}

// CRUD operations

// CreateTask adds a new task.
func (s *Scheduler) CreateTask(task *Task) error {
	return s.store.Create(task)
}

// GetTask retrieves a task by ID.
func (s *Scheduler) GetTask(id string) (*Task, error) {
	return s.store.Get(id)
}

// GetAllTasks retrieves all tasks.
func (s *Scheduler) GetAllTasks() ([]*Task, error) {
	return s.store.GetAll()
}

// DeleteTask removes a task.
func (s *Scheduler) DeleteTask(id string) error {
	return s.store.Delete(id)
}

// GetTaskRuns retrieves execution history for a task.
func (s *Scheduler) GetTaskRuns(taskID string, limit int) ([]*TaskRun, error) {
	return s.store.GetRuns(taskID, limit)
}
