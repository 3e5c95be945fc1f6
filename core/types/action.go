package types

import (
	"strings"

	"github.com/google/uuid"
)

// ActionIDPrefix marks command strings that refer to a stored custom action
// rather than a built-in gesture command.
const ActionIDPrefix = "custom_"

// Action is a persisted, previously validated automation snippet together
// with the natural-language prompt that produced it.
type Action struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Code   string `json:"code"`
}

// ActionSummary is the listing view of an Action. Code is deliberately
// omitted: listings are for display and selection, not for exposing source.
type ActionSummary struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// ExecutionResult reports a completed action run. Prompt echoes the
// originating request for operator context.
type ExecutionResult struct {
	Status string `json:"status"`
	Prompt string `json:"action,omitempty"`
}

// NewActionID mints a display/collision-avoidance key of the form
// "custom_" followed by 8 lowercase hex characters. Uniqueness is
// probabilistic only; this is not a security token.
func NewActionID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return ActionIDPrefix + hex[:8]
}

// IsActionID reports whether a command string names a custom action.
func IsActionID(command string) bool {
	return strings.HasPrefix(command, ActionIDPrefix)
}
