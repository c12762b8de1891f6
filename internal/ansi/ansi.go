// Package ansi provides the SGR escape codes used for terminal output and
// decides whether they should be emitted at all.
package ansi

import "os"

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)

// Enabled reports whether colour output is wanted. Setting NO_COLOR to any
// non-empty value disables it (https://no-color.org).
func Enabled() bool {
	return os.Getenv("NO_COLOR") == ""
}

// Paint wraps s in the given codes followed by Reset, or returns s unchanged
// when colour is disabled.
func Paint(s string, codes ...string) string {
	if len(codes) == 0 || !Enabled() {
		return s
	}
	var prefix string
	for _, c := range codes {
		prefix += c
	}
	return prefix + s + Reset
}
