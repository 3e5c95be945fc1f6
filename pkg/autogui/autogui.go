// Package autogui is the GUI-automation capability surface: mouse,
// keyboard and screen primitives on top of robotgo. The server uses it to
// dispatch built-in gesture commands, and it is the only non-stdlib package
// exported into the interpreter that runs generated snippets.
package autogui

import "github.com/go-vgo/robotgo"

// MoveMouse moves the cursor to absolute screen coordinates.
func MoveMouse(x, y int) {
	robotgo.Move(x, y)
}

// Click presses a mouse button ("left", "right", "center"), optionally as
// a double click.
func Click(button string, double bool) {
	robotgo.Click(button, double)
}

// Scroll scrolls by the given horizontal and vertical amounts.
func Scroll(x, y int) {
	robotgo.Scroll(x, y)
}

// TypeText types the string using the active keyboard layout.
func TypeText(text string) {
	robotgo.TypeStr(text)
}

// Hotkey taps key with the given modifiers held, e.g. Hotkey("tab", "ctrl").
func Hotkey(key string, modifiers ...string) error {
	args := make([]interface{}, 0, len(modifiers))
	for _, m := range modifiers {
		args = append(args, m)
	}
	return robotgo.KeyTap(key, args...)
}

// ScreenSize returns the primary display size in pixels.
func ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}
