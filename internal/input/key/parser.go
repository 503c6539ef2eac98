package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key name from a configuration value.
//
// Supported formats:
//   - Single character: "a", "Z", "7"
//   - Function keys: "F1" through "F12"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - Bracketed names: "<F4>", "<Esc>", "<CR>"
//
// Modifier combinations are rejected: control keys are single keys.
func Parse(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return KeyNone, ErrEmptySpec
	}

	// Accept Vim-style <...> notation for a single key
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = strings.TrimSpace(spec[1 : len(spec)-1])
		if spec == "" {
			return KeyNone, ErrInvalidSpec
		}
	}

	if len(spec) > 1 && (strings.Contains(spec, "+") || strings.Contains(spec, "-")) {
		return KeyNone, fmt.Errorf("%w: key combinations are not supported: %q", ErrInvalidSpec, spec)
	}

	k := KeyFromName(spec)
	if k == KeyNone {
		return KeyNone, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
	}
	return k, nil
}
