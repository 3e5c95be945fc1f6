// Package registry owns the document of record for custom actions: a single
// JSON object mapping action id to {id, prompt, code}, rewritten wholesale
// on every mutation.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/handwave/handwave/core/types"
	"github.com/mudler/xlog"
)

// Registry is a JSON-file backed store of approved actions. A single mutex
// serializes all mutations and every rewrite goes through a temp file plus
// rename, so two concurrent saves cannot lose each other's entries and a
// reader never observes a half-written document.
type Registry struct {
	path     string
	mu       sync.Mutex
	degraded atomic.Bool
}

// New creates a registry backed by the JSON document at path. The file is
// created lazily on first save.
func New(path string) *Registry {
	return &Registry{path: path}
}

// Load reads the backing document fresh from disk. A missing or unparsable
// document yields an empty mapping rather than an error: the control
// surface stays available even when the store is corrupt. Corruption is
// logged and exposed through Degraded so operators can tell silent data
// loss apart from a genuinely empty store.
func (r *Registry) Load() map[string]types.Action {
	actions := map[string]types.Action{}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			xlog.Error("Failed to read custom actions file", "path", r.path, "error", err)
			r.degraded.Store(true)
		}
		return actions
	}
	if len(data) == 0 {
		return actions
	}

	if err := json.Unmarshal(data, &actions); err != nil {
		xlog.Error("Custom actions file is corrupt, serving empty registry", "path", r.path, "error", err)
		r.degraded.Store(true)
		return map[string]types.Action{}
	}

	r.degraded.Store(false)
	return actions
}

// Get retrieves a single action by id.
func (r *Registry) Get(id string) (types.Action, error) {
	action, ok := r.Load()[id]
	if !ok {
		return types.Action{}, &types.NotFoundError{ID: id}
	}
	return action, nil
}

// Save inserts or overwrites the entry at action.ID and rewrites the
// document. A colliding id silently replaces the previous entry.
func (r *Registry) Save(action types.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	actions := r.Load()
	actions[action.ID] = action
	if err := r.write(actions); err != nil {
		return err
	}

	xlog.Info("Saved custom action", "id", action.ID, "prompt", action.Prompt)
	return nil
}

// Delete removes the entry at id. Deleting an unknown id reports not-found
// and leaves the document untouched.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	actions := r.Load()
	if _, ok := actions[id]; !ok {
		return &types.NotFoundError{ID: id}
	}
	delete(actions, id)

	if err := r.write(actions); err != nil {
		return err
	}

	xlog.Info("Deleted custom action", "id", id)
	return nil
}

// List enumerates id and prompt for every stored action, sorted by id.
// Code never leaves the registry through the listing.
func (r *Registry) List() []types.ActionSummary {
	actions := r.Load()

	summaries := make([]types.ActionSummary, 0, len(actions))
	for _, a := range actions {
		summaries = append(summaries, types.ActionSummary{ID: a.ID, Prompt: a.Prompt})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })

	return summaries
}

// Count returns the number of stored actions.
func (r *Registry) Count() int {
	return len(r.Load())
}

// Degraded reports whether the most recent read found a corrupt document.
func (r *Registry) Degraded() bool {
	return r.degraded.Load()
}

func (r *Registry) write(actions map[string]types.Action) error {
	data, err := json.MarshalIndent(actions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".actions-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write actions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return os.Rename(tmp.Name(), r.path)
}
