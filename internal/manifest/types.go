// Package manifest locates, parses and validates a crate's Cargo.toml for
// packaging as an npm component.
package manifest

import (
	"slices"
	"strings"
)

// FileName is the name of the source manifest inside a crate directory.
const FileName = "Cargo.toml"

// DefaultVersion is the package version assumed when Cargo.toml omits one.
const DefaultVersion = "0.0.0"

// SourceManifest is the parsed form of Cargo.toml. Optional fields are nil
// when the manifest omits them.
type SourceManifest struct {
	Name        string
	Version     string
	Description *string
	License     *string
	Homepage    *string
	Repository  *Repository
	Authors     []string
	Keywords    []string

	// CrateTypes holds [lib] crate-type.
	CrateTypes []string

	// Dependencies holds [dependencies]; only presence and features are
	// inspected.
	Dependencies map[string]Dependency

	// WasmPack holds the raw [package.metadata.wasm-pack] table. Its
	// profile subtable is validated against the schema in profile.go.
	WasmPack map[string]any

	// Dir is the directory containing Cargo.toml; empty for in-memory parses.
	Dir string
}

// Repository is the descriptor's repository object. Cargo only records a URL,
// so Type is always "git" for values read from Cargo.toml.
type Repository struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Dependency is a single [dependencies] entry in either the string form
// (`dep = "1.0"`) or the table form (`dep = { version = "1.0", features = [...] }`).
type Dependency struct {
	Version  string
	Features []string
}

// HasFeature reports whether the dependency enables feature.
func (d Dependency) HasFeature(feature string) bool {
	return slices.Contains(d.Features, feature)
}

// CrateName returns the crate name as used for file names: hyphens become
// underscores, matching what the compiler emits.
func (m *SourceManifest) CrateName() string {
	return strings.ReplaceAll(m.Name, "-", "_")
}

// PackageName returns the crate name in npm form: underscores become hyphens.
func (m *SourceManifest) PackageName() string {
	return strings.ReplaceAll(m.Name, "_", "-")
}

// ProfileOverrides returns the raw [package.metadata.wasm-pack.profile] table,
// or nil when the manifest declares none.
func (m *SourceManifest) ProfileOverrides() map[string]any {
	profiles, _ := m.WasmPack["profile"].(map[string]any)
	return profiles
}
