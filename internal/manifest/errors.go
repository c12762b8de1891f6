package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for manifest loading and crate configuration checks.
var (
	// ErrManifestNotFound indicates no Cargo.toml was found under the active lookup policy.
	ErrManifestNotFound = errors.New("crate directory is missing a `Cargo.toml` file; is this a Rust crate?")
	// ErrManifestParse indicates Cargo.toml is malformed or a known field has the wrong type.
	ErrManifestParse = errors.New("failed to parse Cargo.toml")
	// ErrInvalidBuildMode indicates [lib] crate-type does not include "cdylib".
	ErrInvalidBuildMode = errors.New("crate-type must be cdylib to compile to wasm32-unknown-unknown")
	// ErrMissingRequiredDependency indicates wasm-bindgen is not declared as a dependency.
	ErrMissingRequiredDependency = errors.New("\"wasm-bindgen\" must be declared in the [dependencies] section of Cargo.toml")
	// ErrInvalidProfileValue indicates a recognized profile option holds a value of the wrong kind.
	ErrInvalidProfileValue = errors.New("invalid profile value")
	// ErrUnknownBuildProfile indicates the caller requested a profile outside dev, release and profiling.
	ErrUnknownBuildProfile = errors.New("unknown build profile")
)

// ParseError records a structural problem in Cargo.toml together with the
// dotted key path it was found at.
type ParseError struct {
	Field string
	Line  int // 1-based; 0 when the decoder reported no position
	Err   error
}

// Error returns a human-readable string including the offending field.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: %s (line %d): %v", ErrManifestParse, e.Field, e.Line, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrManifestParse, e.Field, e.Err)
}

// Is reports ErrManifestParse so callers can match the category with errors.Is.
func (e *ParseError) Is(target error) bool {
	return target == ErrManifestParse
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ProfileValueError reports a recognized profile option whose value has the
// wrong kind. Key is relative to the profile, e.g. "wasm-bindgen.debug-js-glue".
type ProfileValueError struct {
	Profile string
	Key     string
	Want    ValueKind
	Got     any
}

// Path returns the fully qualified Cargo.toml key path of the bad value.
func (e *ProfileValueError) Path() string {
	if e.Key == "" {
		return profilePath(e.Profile)
	}
	return profilePath(e.Profile) + "." + e.Key
}

// Error returns a human-readable string naming the full key path.
func (e *ProfileValueError) Error() string {
	return fmt.Sprintf("%v: %s: expected %s, found %s", ErrInvalidProfileValue, e.Path(), e.Want, describeValue(e.Got))
}

// Unwrap returns ErrInvalidProfileValue for use with errors.Is.
func (e *ProfileValueError) Unwrap() error {
	return ErrInvalidProfileValue
}
