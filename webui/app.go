// Package webui exposes the control surface: REST endpoints for the custom
// action pipeline and a WebSocket channel for real-time gesture commands.
package webui

import (
	"errors"
	"net/http"
	"runtime"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/handwave/handwave/core/types"
	"github.com/handwave/handwave/pkg/autogui"
	"github.com/handwave/handwave/services/keymap"
)

type App struct {
	config *Config
	*fiber.App
}

func NewApp(opts ...Option) *App {
	config := NewConfig(opts...)

	webapp := fiber.New(fiber.Config{
		AppName: "handwave",
	})

	a := &App{
		config: config,
		App:    webapp,
	}

	a.registerRoutes(webapp)

	return a
}

// errorJSON maps the domain error taxonomy onto HTTP statuses. The caller
// always sees a human-readable reason, never a stack trace. Validation
// failures carry the raw candidate so an operator can inspect what the
// model produced; the candidate is never executed or persisted.
func errorJSON(c *fiber.Ctx, err error) error {
	var (
		notFound   *types.NotFoundError
		validation *types.ValidationError
		generation *types.GenerationError
	)

	switch {
	case errors.As(err, &notFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
	case errors.As(err, &validation):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": validation.Reason,
			"code":  validation.Code,
		})
	case errors.As(err, &generation):
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": generation.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func statusJSONMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"status": message})
}

// Health reports liveness, the built-in command names for client discovery,
// and the registry's degraded flag, so a corrupt store is visible to
// operators even though callers still see an empty mapping.
func (a *App) Health() fiber.Handler {
	commands := keymap.CommandNames()
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "ok",
			"os":             runtime.GOOS,
			"commands":       commands,
			"custom_actions": a.config.Registry.Count(),
			"degraded":       a.config.Registry.Degraded(),
		})
	}
}

// ScreenInfo returns the primary display size for client-side coordinate
// mapping.
func (a *App) ScreenInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, h := autogui.ScreenSize()
		return c.JSON(fiber.Map{"width": w, "height": h})
	}
}
