// Package policy screens candidate automation snippets before they are
// granted execution privilege. The screen is purely textual: a deny-list of
// destructive or escape-prone constructs, an allow-list over the imports a
// snippet may declare, and a length bound. It is deliberately cheap and
// explainable, not a sandbox; the interpreter-side symbol restriction in
// core/executor is the second half of the containment story.
package policy

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLines bounds snippet size to keep generated code auditable.
const MaxLines = 50

// AllowedImports is the fixed capability surface a snippet may touch:
// GUI automation (autogui), subprocess spawning (os/exec), timing (time)
// and OS path utilities (os, path/filepath).
var AllowedImports = map[string]bool{
	"autogui":       true,
	"os/exec":       true,
	"time":          true,
	"os":            true,
	"path/filepath": true,
}

// blockedPatterns are the textual spellings of operations a snippet may
// never contain, whatever it imports. The first match wins and the pattern
// itself is surfaced as the rejection reason.
var blockedPatterns = []*regexp.Regexp{
	// recursive and single-entry filesystem removal
	regexp.MustCompile(`(?i)\bos\.RemoveAll\b`),
	regexp.MustCompile(`(?i)\bos\.Remove\b`),
	regexp.MustCompile(`(?i)\bsyscall\.(Unlink|Rmdir)\b`),
	// destructive verbs issued through a spawned process
	regexp.MustCompile(`(?i)\bexec\.Command(?:Context)?\(.*?(rm |del |rmdir|rd |format |mkfs)`),
	// dynamic module loading and dynamic evaluation of strings as code
	regexp.MustCompile(`(?i)\bplugin\.Open\b`),
	regexp.MustCompile(`(?i)\binterp\.New\b`),
	regexp.MustCompile(`(?i)\.Eval\(`),
	// write-creating file opens
	regexp.MustCompile(`(?i)\bos\.Create\b`),
	regexp.MustCompile(`(?i)\bos\.WriteFile\b`),
	regexp.MustCompile(`(?i)\bos\.OpenFile\([^)]*O_(CREATE|WRONLY|RDWR|APPEND|TRUNC)`),
	// disk format commands
	regexp.MustCompile(`(?i)\bmkfs(\.[a-z0-9]+)?\b`),
	regexp.MustCompile(`(?i)\bformat\s+[a-zA-Z]:`),
}

var (
	importSingleRe = regexp.MustCompile(`(?m)^\s*import\s+(?:[_.\w]+\s+)?"([^"]+)"`)
	importBlockRe  = regexp.MustCompile(`(?ms)^\s*import\s*\((.*?)\)`)
	importSpecRe   = regexp.MustCompile(`(?m)^\s*(?:[_.\w]+\s+)?"([^"]+)"`)
)

// Verdict is the outcome of one safety screen. It is transient: callers
// recompute it on demand and never persist it.
type Verdict struct {
	Safe   bool   `json:"safe"`
	Reason string `json:"reason"`
}

// Validate screens a candidate snippet. Deterministic, no I/O, no state:
// checks run in a fixed order and the first failure wins.
func Validate(code string) Verdict {
	for _, pattern := range blockedPatterns {
		if pattern.MatchString(code) {
			return Verdict{Reason: fmt.Sprintf("Blocked dangerous pattern: %s", pattern.String())}
		}
	}

	var disallowed []string
	for _, imp := range Imports(code) {
		if !AllowedImports[imp] {
			disallowed = append(disallowed, imp)
		}
	}
	if len(disallowed) > 0 {
		return Verdict{Reason: "Disallowed imports: " + strings.Join(disallowed, ", ")}
	}

	if len(strings.Split(code, "\n")) > MaxLines {
		return Verdict{Reason: fmt.Sprintf("Code too long (max %d lines)", MaxLines)}
	}

	return Verdict{Safe: true}
}

// Imports extracts every import target declared by the snippet, covering
// both the single-line and the parenthesized block form. The extraction is
// textual on purpose: the snippets screened here are flat scripts, and the
// validator must stay a pure function of the source text.
func Imports(code string) []string {
	seen := map[string]bool{}
	imports := []string{}

	add := func(target string) {
		if !seen[target] {
			seen[target] = true
			imports = append(imports, target)
		}
	}

	for _, m := range importSingleRe.FindAllStringSubmatch(code, -1) {
		add(m[1])
	}
	for _, block := range importBlockRe.FindAllStringSubmatch(code, -1) {
		for _, m := range importSpecRe.FindAllStringSubmatch(block[1], -1) {
			add(m[1])
		}
	}

	return imports
}
