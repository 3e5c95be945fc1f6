package webui

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func (a *App) registerRoutes(webapp *fiber.App) {
	webapp.Get("/", a.Health())
	webapp.Get("/api/screen-info", a.ScreenInfo())

	// Custom action pipeline
	webapp.Post("/api/actions/generate", a.GenerateAction())
	webapp.Post("/api/actions/generate-and-save", a.GenerateAndSaveAction())
	webapp.Post("/api/actions/approve", a.ApproveAction())
	webapp.Get("/api/actions", a.ListActions())
	webapp.Delete("/api/actions/:id", a.DeleteAction())
	webapp.Post("/api/actions/:id/run", a.ExecuteAction())

	// Scheduled runs
	webapp.Post("/api/schedules", a.CreateSchedule())
	webapp.Get("/api/schedules", a.ListSchedules())
	webapp.Delete("/api/schedules/:id", a.DeleteSchedule())
	webapp.Get("/api/schedules/:id/runs", a.ScheduleRuns())

	// Real-time gesture channel
	webapp.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	webapp.Get("/ws", websocket.New(a.GestureChannel()))
}
