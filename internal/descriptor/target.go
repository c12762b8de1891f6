package descriptor

import (
	"fmt"
	"strings"
)

// Target selects how the generated JS is consumed.
type Target int

const (
	Bundler   Target = iota // ES module for webpack/rollup style bundlers
	Nodejs                  // CommonJS for Node.js, loads the wasm binary directly
	NoModules               // classic <script> tag, no module system
	Web                     // native ES module loaded by the browser
)

// EntryKind is the package.json field that points at the JS entry file.
type EntryKind string

// Entry field names.
const (
	EntryModule  EntryKind = "module"
	EntryMain    EntryKind = "main"
	EntryBrowser EntryKind = "browser"
)

// layout is one row of the target table.
type layout struct {
	name  string
	entry EntryKind
	bgJS  bool // ships <prefix>_bg.js alongside the wasm binary
}

// targets is the complete target matrix; adding a target means adding a row.
var targets = [...]layout{
	Bundler:   {name: "bundler", entry: EntryModule, bgJS: true},
	Nodejs:    {name: "nodejs", entry: EntryMain},
	NoModules: {name: "no-modules", entry: EntryBrowser},
	Web:       {name: "web", entry: EntryModule},
}

// ParseTarget maps a CLI target name to a Target.
func ParseTarget(s string) (Target, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, l := range targets {
		if l.name == want {
			return Target(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTarget, s, strings.Join(TargetNames(), ", "))
}

// TargetNames lists the accepted target names in table order.
func TargetNames() []string {
	names := make([]string, len(targets))
	for i, l := range targets {
		names[i] = l.name
	}
	return names
}

// String returns the CLI name of the target.
func (t Target) String() string {
	if t < 0 || int(t) >= len(targets) {
		return fmt.Sprintf("Target(%d)", int(t))
	}
	return targets[t].name
}

// Entry returns the package.json entry field used by the target.
func (t Target) Entry() EntryKind {
	return t.layout().entry
}

func (t Target) layout() layout {
	if t < 0 || int(t) >= len(targets) {
		return targets[Bundler]
	}
	return targets[t]
}
