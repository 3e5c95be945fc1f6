// Package executor runs previously approved custom actions inside a
// restricted interpreter namespace.
package executor

import (
	"context"
	"fmt"

	"github.com/mudler/xlog"
	"github.com/traefik/yaegi/interp"

	"github.com/handwave/handwave/core/policy"
	"github.com/handwave/handwave/core/registry"
	"github.com/handwave/handwave/core/types"
)

// Executor loads actions from the registry and executes their code. Every
// run re-screens the stored code first: the backing document can be edited
// outside the pipeline, and code that passed at creation time must not be
// trusted at execution time.
type Executor struct {
	registry *registry.Registry
}

func New(reg *registry.Registry) *Executor {
	return &Executor{registry: reg}
}

// Run loads, revalidates and executes the action with the given id. Each
// call is a single attempt: no retry, no cancellation of in-flight code.
// Runtime faults from the snippet, interpreter panics included, are caught
// and reported as an ExecutionError rather than propagated.
func (e *Executor) Run(ctx context.Context, id string) (types.ExecutionResult, error) {
	action, err := e.registry.Get(id)
	if err != nil {
		return types.ExecutionResult{}, err
	}

	if verdict := policy.Validate(action.Code); !verdict.Safe {
		xlog.Warn("Stored action failed safety re-check, refusing to run", "id", id, "reason", verdict.Reason)
		return types.ExecutionResult{}, &types.ValidationError{Reason: verdict.Reason, Code: action.Code}
	}

	if err := e.execute(ctx, action.Code); err != nil {
		xlog.Error("Error executing custom action", "id", id, "error", err)
		return types.ExecutionResult{}, &types.ExecutionError{ID: id, Err: err}
	}

	xlog.Info("Executed custom action", "id", id, "prompt", action.Prompt)
	return types.ExecutionResult{Status: "ok", Prompt: action.Prompt}, nil
}

// execute evaluates the snippet in a fresh interpreter and calls its
// Run() error entrypoint. A fresh interpreter per run keeps executions
// from leaking state into each other.
func (e *Executor) execute(ctx context.Context, code string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	i := interp.New(interp.Options{})
	if err := i.Use(Symbols()); err != nil {
		return err
	}

	if _, err := i.EvalWithContext(ctx, fmt.Sprintf("package action\n%s", code)); err != nil {
		return err
	}

	v, err := i.Eval("action.Run")
	if err != nil {
		return err
	}

	run, ok := v.Interface().(func() error)
	if !ok {
		return fmt.Errorf("snippet does not declare func Run() error")
	}

	return run()
}
