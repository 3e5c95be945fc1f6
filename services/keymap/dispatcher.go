package keymap

import (
	"context"
	"fmt"

	"github.com/mudler/xlog"

	"github.com/handwave/handwave/core/types"
	"github.com/handwave/handwave/pkg/autogui"
)

// Runner executes stored custom actions; satisfied by core/executor.
type Runner interface {
	Run(ctx context.Context, actionID string) (types.ExecutionResult, error)
}

// Dispatcher routes gesture commands: custom action ids to the runner,
// built-in commands through the keymap.
type Dispatcher struct {
	runner Runner
	keymap map[string]Command
}

func NewDispatcher(runner Runner) *Dispatcher {
	return &Dispatcher{
		runner: runner,
		keymap: Map(),
	}
}

// ExecuteCommand runs a built-in or custom gesture command.
func (d *Dispatcher) ExecuteCommand(ctx context.Context, command string) (types.ExecutionResult, error) {
	if types.IsActionID(command) {
		return d.runner.Run(ctx, command)
	}

	action, ok := d.keymap[command]
	if !ok {
		return types.ExecutionResult{}, &types.NotFoundError{ID: command}
	}

	var err error
	switch action.Special {
	case "open_browser":
		err = openBrowser()
	case "scroll_up":
		autogui.Scroll(0, 5)
	case "scroll_down":
		autogui.Scroll(0, -5)
	default:
		err = autogui.Hotkey(action.Keys[0], action.Keys[1:]...)
	}
	if err != nil {
		return types.ExecutionResult{}, &types.ExecutionError{ID: command, Err: err}
	}

	xlog.Debug("Executed built-in command", "command", command, "description", action.Description)
	return types.ExecutionResult{Status: "ok", Prompt: action.Description}, nil
}

// ExecuteMouse performs a cursor move or click at absolute coordinates.
func (d *Dispatcher) ExecuteMouse(action string, x, y int) (types.ExecutionResult, error) {
	switch action {
	case "move":
		autogui.MoveMouse(x, y)
		return types.ExecutionResult{Status: "ok"}, nil
	case "left_click":
		autogui.MoveMouse(x, y)
		autogui.Click("left", false)
		return types.ExecutionResult{Status: "ok", Prompt: "left_click"}, nil
	case "double_click":
		autogui.MoveMouse(x, y)
		autogui.Click("left", true)
		return types.ExecutionResult{Status: "ok", Prompt: "double_click"}, nil
	case "right_click":
		autogui.MoveMouse(x, y)
		autogui.Click("right", false)
		return types.ExecutionResult{Status: "ok", Prompt: "right_click"}, nil
	default:
		return types.ExecutionResult{}, fmt.Errorf("unknown mouse action: %s", action)
	}
}
