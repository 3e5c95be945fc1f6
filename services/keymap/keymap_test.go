package keymap_test

import (
	"context"
	"errors"
	"runtime"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/handwave/handwave/core/types"
	"github.com/handwave/handwave/services/keymap"
)

type recordingRunner struct {
	ran []string
	err error
}

func (r *recordingRunner) Run(ctx context.Context, actionID string) (types.ExecutionResult, error) {
	r.ran = append(r.ran, actionID)
	if r.err != nil {
		return types.ExecutionResult{}, r.err
	}
	return types.ExecutionResult{Status: "ok", Prompt: "stored prompt"}, nil
}

var _ = Describe("Keymap", func() {
	It("binds the full set of built-in gesture commands", func() {
		m := keymap.Map()
		for _, command := range []string{
			"next_tab", "prev_tab", "close_tab", "new_tab",
			"switch_app", "close_window", "open_browser",
			"volume_up", "volume_down", "play_pause",
			"copy", "paste", "scroll_up", "scroll_down",
		} {
			Expect(m).To(HaveKey(command))
		}
	})

	It("uses the platform modifier for in-app chords", func() {
		mod := "ctrl"
		if runtime.GOOS == "darwin" {
			mod = "cmd"
		}
		Expect(keymap.Map()["copy"].Keys).To(Equal([]string{"c", mod}))
	})

	It("enumerates command names sorted for discovery", func() {
		names := keymap.CommandNames()
		Expect(names).To(HaveLen(len(keymap.Map())))
		Expect(names).To(ContainElements("copy", "next_tab", "scroll_up"))
		Expect(sort.StringsAreSorted(names)).To(BeTrue())
	})

	It("keeps chord and special commands disjoint", func() {
		for name, cmd := range keymap.Map() {
			if cmd.Special != "" {
				Expect(cmd.Keys).To(BeEmpty(), "command %s mixes keys and special", name)
			} else {
				Expect(cmd.Keys).NotTo(BeEmpty(), "command %s has no effect", name)
			}
		}
	})
})

var _ = Describe("Dispatcher", func() {
	It("routes custom action ids to the runner", func() {
		runner := &recordingRunner{}
		d := keymap.NewDispatcher(runner)

		result, err := d.ExecuteCommand(context.Background(), "custom_00c0ffee")
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Status).To(Equal("ok"))
		Expect(runner.ran).To(Equal([]string{"custom_00c0ffee"}))
	})

	It("propagates runner failures untouched", func() {
		runner := &recordingRunner{err: &types.NotFoundError{ID: "custom_00c0ffee"}}
		d := keymap.NewDispatcher(runner)

		_, err := d.ExecuteCommand(context.Background(), "custom_00c0ffee")

		var notFound *types.NotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
	})

	It("reports unknown commands without touching the runner", func() {
		runner := &recordingRunner{}
		d := keymap.NewDispatcher(runner)

		_, err := d.ExecuteCommand(context.Background(), "wiggle_fingers")

		var notFound *types.NotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(runner.ran).To(BeEmpty())
	})

	It("reports unknown mouse actions", func() {
		d := keymap.NewDispatcher(&recordingRunner{})

		_, err := d.ExecuteMouse("triple_click", 10, 10)
		Expect(err).To(HaveOccurred())
	})
})
