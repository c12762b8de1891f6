package manifest

import (
	"fmt"
	"sort"
	"time"
)

// metadataPrefix is the Cargo.toml key path of the packager's own settings.
const metadataPrefix = "package.metadata.wasm-pack"

// Recognized build profiles.
const (
	ProfileDev       = "dev"
	ProfileRelease   = "release"
	ProfileProfiling = "profiling"
)

// ValueKind names the kind of value a profile option accepts.
type ValueKind int

const (
	KindBool          ValueKind = iota // true or false
	KindTable                          // a nested table of further options
	KindBoolOrStrings                  // true, false or an array of strings
)

// String returns the kind as it reads in error messages.
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "a boolean"
	case KindTable:
		return "a table"
	case KindBoolOrStrings:
		return "a boolean or an array of strings"
	default:
		return "unknown"
	}
}

func (k ValueKind) accepts(v any) bool {
	switch k {
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindTable:
		_, ok := v.(map[string]any)
		return ok
	case KindBoolOrStrings:
		if _, ok := v.(bool); ok {
			return true
		}
		items, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

// ProfileSettings is the resolved configuration of one build profile: the
// built-in defaults for that profile with Cargo.toml overrides applied.
type ProfileSettings struct {
	Name                  string
	DebugJSGlue           bool
	DemangleNameSection   bool
	DWARFDebugInfo        bool
	OmitDefaultModulePath bool
	SplitLinkedModules    bool
	WasmOpt               []string // nil disables wasm-opt
}

// DefaultProfile returns the built-in settings for a recognized profile.
func DefaultProfile(name string) (ProfileSettings, error) {
	switch name {
	case ProfileDev:
		return ProfileSettings{Name: name, DebugJSGlue: true, DemangleNameSection: true}, nil
	case ProfileRelease, ProfileProfiling:
		return ProfileSettings{Name: name, DemangleNameSection: true, WasmOpt: []string{"-O"}}, nil
	default:
		return ProfileSettings{}, fmt.Errorf("%w: %q (want %s, %s or %s)",
			ErrUnknownBuildProfile, name, ProfileDev, ProfileRelease, ProfileProfiling)
	}
}

// profileOption is one row of the override schema.
type profileOption struct {
	kind  ValueKind
	apply func(*ProfileSettings, any) // nil for tables
}

// profileSchema maps option key paths, relative to a profile table, to the
// kind of value they accept. Keys missing from this table are unknown and
// only produce a warning.
var profileSchema = map[string]profileOption{
	"wasm-bindgen": {kind: KindTable},
	"wasm-bindgen.debug-js-glue": {kind: KindBool, apply: func(p *ProfileSettings, v any) {
		p.DebugJSGlue = v.(bool)
	}},
	"wasm-bindgen.demangle-name-section": {kind: KindBool, apply: func(p *ProfileSettings, v any) {
		p.DemangleNameSection = v.(bool)
	}},
	"wasm-bindgen.dwarf-debug-info": {kind: KindBool, apply: func(p *ProfileSettings, v any) {
		p.DWARFDebugInfo = v.(bool)
	}},
	"wasm-bindgen.omit-default-module-path": {kind: KindBool, apply: func(p *ProfileSettings, v any) {
		p.OmitDefaultModulePath = v.(bool)
	}},
	"wasm-bindgen.split-linked-modules": {kind: KindBool, apply: func(p *ProfileSettings, v any) {
		p.SplitLinkedModules = v.(bool)
	}},
	"wasm-opt": {kind: KindBoolOrStrings, apply: applyWasmOpt},
}

func applyWasmOpt(p *ProfileSettings, v any) {
	switch opt := v.(type) {
	case bool:
		if opt {
			p.WasmOpt = []string{"-O"}
		} else {
			p.WasmOpt = nil
		}
	case []any:
		args := make([]string, 0, len(opt))
		for _, a := range opt {
			args = append(args, a.(string))
		}
		p.WasmOpt = args
	}
}

func isKnownProfile(name string) bool {
	return name == ProfileDev || name == ProfileRelease || name == ProfileProfiling
}

// checkProfile validates one recognized profile table against profileSchema.
// Unknown keys are appended to warnings; the first mistyped known key aborts.
// When settings is non-nil the validated values are applied to it.
func checkProfile(profile, prefix string, table map[string]any, settings *ProfileSettings, warnings []Warning) ([]Warning, error) {
	for _, k := range sortedKeys(table) {
		v := table[k]
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		opt, ok := profileSchema[key]
		if !ok {
			warnings = append(warnings, Warning{Kind: UnknownProfileKey, Profile: profile, Key: key})
			continue
		}
		if !opt.kind.accepts(v) {
			return warnings, &ProfileValueError{Profile: profile, Key: key, Want: opt.kind, Got: v}
		}
		if opt.kind == KindTable {
			var err error
			if warnings, err = checkProfile(profile, key, v.(map[string]any), settings, warnings); err != nil {
				return warnings, err
			}
			continue
		}
		if settings != nil {
			opt.apply(settings, v)
		}
	}
	return warnings, nil
}

func profilePath(profile string) string {
	return metadataPrefix + ".profile." + profile
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// describeValue names the TOML kind of a decoded value.
func describeValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nothing"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("boolean %t", v)
	case int64, int:
		return fmt.Sprintf("integer %v", v)
	case float64:
		return fmt.Sprintf("float %v", v)
	case []any:
		return "an array"
	case map[string]any:
		return "a table"
	case time.Time:
		return "a datetime"
	default:
		return fmt.Sprintf("%T", v)
	}
}
