// Package keymap maps built-in gesture commands to key chords and routes
// command and mouse events to the right effector. It contains no decision
// logic beyond the lookup: custom_-prefixed commands go to the executor,
// everything else to a fixed, platform-aware table.
package keymap

import (
	"os/exec"
	"runtime"
	"sort"
)

// Command is one built-in gesture command: either a key chord or a special
// handler named by Special.
type Command struct {
	Keys        []string
	Description string
	Special     string
}

// Map returns the platform-specific table of built-in commands. In-app tab
// controls are kept separate from OS-level window controls so gestures can
// be bound to either scope.
func Map() map[string]Command {
	mod := "ctrl"
	if runtime.GOOS == "darwin" {
		mod = "cmd"
	}

	return map[string]Command{
		// In-app tab controls
		"next_tab":  {Keys: []string{"tab", mod}, Description: "Next Tab (in-app)"},
		"prev_tab":  {Keys: []string{"tab", mod, "shift"}, Description: "Previous Tab (in-app)"},
		"close_tab": {Keys: []string{"w", mod}, Description: "Close Tab (in-app)"},
		"new_tab":   {Keys: []string{"t", mod}, Description: "New Tab (in-app)"},

		// OS-level controls
		"switch_app":   {Keys: []string{"tab", "alt"}, Description: "Switch App (OS-level)"},
		"close_window": {Keys: []string{"f4", "alt"}, Description: "Close Window (OS-level)"},

		// Launchers
		"open_browser": {Description: "Open Browser", Special: "open_browser"},

		// Media
		"volume_up":   {Keys: []string{"audio_vol_up"}, Description: "Volume Up"},
		"volume_down": {Keys: []string{"audio_vol_down"}, Description: "Volume Down"},
		"play_pause":  {Keys: []string{"audio_play"}, Description: "Play/Pause"},

		// Clipboard
		"copy":  {Keys: []string{"c", mod}, Description: "Copy"},
		"paste": {Keys: []string{"v", mod}, Description: "Paste"},

		// Scrolling
		"scroll_up":   {Description: "Scroll Up", Special: "scroll_up"},
		"scroll_down": {Description: "Scroll Down", Special: "scroll_down"},
	}
}

// CommandNames lists every built-in command name, sorted. Clients use it to
// discover which gesture commands the server understands.
func CommandNames() []string {
	m := Map()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// openBrowser launches the platform default browser.
func openBrowser() error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", "").Start()
	case "darwin":
		return exec.Command("open", "-a", "Safari").Start()
	default:
		return exec.Command("xdg-open", "http://").Start()
	}
}
