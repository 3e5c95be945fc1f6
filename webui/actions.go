package webui

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/mudler/xlog"

	"github.com/handwave/handwave/core/policy"
	"github.com/handwave/handwave/core/types"
)

type createActionRequest struct {
	Prompt string `json:"prompt"`
}

type approveActionRequest struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Code   string `json:"code"`
}

// GenerateAction produces a proposed action from a prompt without
// persisting it; the client decides whether to approve.
func (a *App) GenerateAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := createActionRequest{}
		if err := c.BodyParser(&payload); err != nil {
			return errorJSON(c, err)
		}
		if payload.Prompt == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt is required"})
		}

		action, err := a.config.Generator.Generate(c.Context(), payload.Prompt)
		if err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(action)
	}
}

// GenerateAndSaveAction generates and, on a safe verdict, persists in one
// step.
func (a *App) GenerateAndSaveAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := createActionRequest{}
		if err := c.BodyParser(&payload); err != nil {
			return errorJSON(c, err)
		}
		if payload.Prompt == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt is required"})
		}

		action, err := a.config.Generator.Generate(c.Context(), payload.Prompt)
		if err != nil {
			return errorJSON(c, err)
		}

		if err := a.config.Registry.Save(action); err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(fiber.Map{
			"status": "ok",
			"id":     action.ID,
			"prompt": action.Prompt,
		})
	}
}

// ApproveAction persists caller-supplied code. The code is re-screened
// here: approval is not a validation bypass, whatever path the code
// arrived by.
func (a *App) ApproveAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := approveActionRequest{}
		if err := c.BodyParser(&payload); err != nil {
			return errorJSON(c, err)
		}
		if payload.ID == "" || payload.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id and code are required"})
		}

		if verdict := policy.Validate(payload.Code); !verdict.Safe {
			xlog.Warn("Approve rejected by safety check", "id", payload.ID, "reason", verdict.Reason)
			return errorJSON(c, &types.ValidationError{Reason: verdict.Reason, Code: payload.Code})
		}

		if err := a.config.Registry.Save(types.Action{
			ID:     payload.ID,
			Prompt: payload.Prompt,
			Code:   payload.Code,
		}); err != nil {
			return errorJSON(c, err)
		}

		return c.JSON(fiber.Map{"status": "ok", "id": payload.ID})
	}
}

// DeleteAction removes a stored action.
func (a *App) DeleteAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.config.Registry.Delete(c.Params("id")); err != nil {
			return errorJSON(c, err)
		}
		return statusJSONMessage(c, "ok")
	}
}

// ListActions enumerates stored actions, id and prompt only.
func (a *App) ListActions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actions := a.config.Registry.List()
		return c.JSON(fiber.Map{
			"actions": actions,
			"count":   len(actions),
		})
	}
}

// ExecuteAction runs a stored action through the revalidate-then-run path.
func (a *App) ExecuteAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := a.config.Executor.Run(c.Context(), c.Params("id"))
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(result)
	}
}
