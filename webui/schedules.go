package webui

import (
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/handwave/handwave/core/scheduler"
)

type createScheduleRequest struct {
	ActionID      string `json:"action_id"`
	ScheduleType  string `json:"schedule_type"`
	ScheduleValue string `json:"schedule_value"`
}

// CreateSchedule registers a recurring or one-shot run of a stored action.
// The action must exist at scheduling time; execution-time safety is still
// the executor's job.
func (a *App) CreateSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := createScheduleRequest{}
		if err := c.BodyParser(&payload); err != nil {
			return errorJSON(c, err)
		}

		if _, err := a.config.Registry.Get(payload.ActionID); err != nil {
			return errorJSON(c, err)
		}

		task, err := scheduler.NewTask(payload.ActionID, scheduler.ScheduleType(payload.ScheduleType), payload.ScheduleValue)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if err := a.config.Scheduler.CreateTask(task); err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(task)
	}
}

// ListSchedules enumerates all scheduled tasks.
func (a *App) ListSchedules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tasks, err := a.config.Scheduler.GetAllTasks()
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{"schedules": tasks, "count": len(tasks)})
	}
}

// DeleteSchedule removes a scheduled task.
func (a *App) DeleteSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.config.Scheduler.DeleteTask(c.Params("id")); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return statusJSONMessage(c, "ok")
	}
}

// ScheduleRuns returns the execution history of one schedule, newest first.
func (a *App) ScheduleRuns() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil || limit <= 0 {
			limit = 20
		}

		runs, err := a.config.Scheduler.GetTaskRuns(c.Params("id"), limit)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(fiber.Map{"runs": runs})
	}
}
