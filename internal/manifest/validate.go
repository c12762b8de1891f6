package manifest

import (
	"fmt"
	"slices"
)

const (
	bindgenDependency = "wasm-bindgen"
	dylibCrateType    = "cdylib"

	// getrandom's "js" feature pulls in wasm-bindgen. It is the one indirect
	// declaration of the binding generator that is accepted.
	umbrellaDependency = "getrandom"
	umbrellaFeature    = "js"
)

// WarningKind classifies a non-fatal configuration problem.
type WarningKind int

const (
	UnknownProfile     WarningKind = iota // profile name outside dev, release, profiling
	UnknownProfileKey                     // option key missing from the profile schema
	UnknownMetadataKey                    // key under package.metadata.wasm-pack other than profile
)

// Warning is a non-fatal finding from Validate. The offending data is ignored.
type Warning struct {
	Kind    WarningKind
	Profile string
	Key     string
}

// Path returns the Cargo.toml key path the warning refers to.
func (w Warning) Path() string {
	switch w.Kind {
	case UnknownProfile:
		return profilePath(w.Profile)
	case UnknownProfileKey:
		return profilePath(w.Profile) + "." + w.Key
	default:
		return metadataPrefix + "." + w.Key
	}
}

// String returns the message shown to the user.
func (w Warning) String() string {
	return fmt.Sprintf("%q is an unknown key and will be ignored. Please check your Cargo.toml.", w.Path())
}

// Validated is a manifest that passed Validate, paired with the resolved
// settings of the requested build profile.
type Validated struct {
	*SourceManifest
	Profile ProfileSettings
}

// Validate checks that the crate builds a cdylib, declares wasm-bindgen and
// carries well-formed profile overrides, then resolves the requested profile.
// Warnings about ignored metadata are collected first and returned even when
// validation fails.
func Validate(m *SourceManifest, profile string) (*Validated, []Warning, error) {
	settings, err := DefaultProfile(profile)
	if err != nil {
		return nil, nil, err
	}

	warnings, profileErr := checkMetadata(m, profile, &settings)
	if err := checkCrateType(m); err != nil {
		return nil, warnings, err
	}
	if err := checkBindgen(m); err != nil {
		return nil, warnings, err
	}
	if profileErr != nil {
		return nil, warnings, profileErr
	}
	return &Validated{SourceManifest: m, Profile: settings}, warnings, nil
}

// checkMetadata walks package.metadata.wasm-pack, warning on unknown keys and
// applying the overrides of the requested profile to settings. It stops at
// the first mistyped value of a recognized profile.
func checkMetadata(m *SourceManifest, profile string, settings *ProfileSettings) ([]Warning, error) {
	var warnings []Warning
	for _, k := range sortedKeys(m.WasmPack) {
		if k != "profile" {
			warnings = append(warnings, Warning{Kind: UnknownMetadataKey, Key: k})
		}
	}

	profiles := m.ProfileOverrides()
	for _, name := range sortedKeys(profiles) {
		if !isKnownProfile(name) {
			warnings = append(warnings, Warning{Kind: UnknownProfile, Profile: name})
			continue
		}
		table, ok := profiles[name].(map[string]any)
		if !ok {
			return warnings, &ProfileValueError{Profile: name, Key: "", Want: KindTable, Got: profiles[name]}
		}
		var target *ProfileSettings
		if name == profile {
			target = settings
		}
		var err error
		if warnings, err = checkProfile(name, "", table, target, warnings); err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

func checkCrateType(m *SourceManifest) error {
	if slices.Contains(m.CrateTypes, dylibCrateType) {
		return nil
	}
	return fmt.Errorf("%w: add the following to Cargo.toml:\n\n[lib]\ncrate-type = [\"cdylib\", \"rlib\"]", ErrInvalidBuildMode)
}

func checkBindgen(m *SourceManifest) error {
	if _, ok := m.Dependencies[bindgenDependency]; ok {
		return nil
	}
	if dep, ok := m.Dependencies[umbrellaDependency]; ok && dep.HasFeature(umbrellaFeature) {
		return nil
	}
	return fmt.Errorf("%w (crate %q)", ErrMissingRequiredDependency, m.Name)
}
