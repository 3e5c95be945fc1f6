package executor

import (
	"path"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"github.com/traefik/yaegi/stdlib/unrestricted"

	"github.com/handwave/handwave/core/policy"
	"github.com/handwave/handwave/pkg/autogui"
)

// Symbols builds the interpreter symbol table for one execution: the
// stdlib packages on the import allow-list plus the autogui export table.
// Nothing else is visible to the snippet, in particular not the registry,
// the validator or other actions. This restricts the snippet's programmatic
// environment, not its OS capabilities: the allowed packages already grant
// real mouse, keyboard and process effects.
func Symbols() interp.Exports {
	restricted := interp.Exports{}
	for key, symbols := range stdlib.Symbols {
		// stdlib keys carry a trailing package-name element,
		// e.g. "time/time" for import path "time".
		if policy.AllowedImports[path.Dir(key)] {
			restricted[key] = symbols
		}
	}

	// os/exec is not part of stdlib.Symbols; yaegi ships it in the
	// unrestricted set. Only that one key crosses over; the rest of the
	// unrestricted set (os.Exit and friends) stays out.
	restricted["os/exec/exec"] = unrestricted.Symbols["os/exec/exec"]

	restricted["autogui/autogui"] = map[string]reflect.Value{
		"MoveMouse":  reflect.ValueOf(autogui.MoveMouse),
		"Click":      reflect.ValueOf(autogui.Click),
		"Scroll":     reflect.ValueOf(autogui.Scroll),
		"TypeText":   reflect.ValueOf(autogui.TypeText),
		"Hotkey":     reflect.ValueOf(autogui.Hotkey),
		"ScreenSize": reflect.ValueOf(autogui.ScreenSize),
	}

	return restricted
}
