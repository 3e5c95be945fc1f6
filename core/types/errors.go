package types

import "fmt"

// GenerationError reports that the external text-generation call failed or
// was unreachable. It is never retried automatically.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("code generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError reports that code failed the safety screen. Code carries
// the raw candidate for operator diagnosis; it is never executed or
// persisted.
type ValidationError struct {
	Reason string
	Code   string
}

func (e *ValidationError) Error() string {
	return "code failed safety check: " + e.Reason
}

// NotFoundError reports an operation against an unknown action id. No
// mutation occurs.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "custom action not found: " + e.ID
}

// ExecutionError reports a runtime fault raised by validated code during
// execution. It is caught and reported, never propagated as a fault.
type ExecutionError struct {
	ID  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("error executing %s: %v", e.ID, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
