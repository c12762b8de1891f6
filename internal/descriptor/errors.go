package descriptor

import "errors"

// Sentinel errors for descriptor synthesis and writing.
var (
	// ErrUnknownTarget indicates a target name outside the target table.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrOutputDirectoryMissing indicates a child package was written before
	// the primary package created its output directory and package.json.
	ErrOutputDirectoryMissing = errors.New("output directory has no primary package.json; build the primary package first")
)
