package descriptor

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Tarnadas/wasm-pack/internal/manifest"
)

// licensePattern matches license files at the crate root, e.g. LICENSE,
// LICENSE-MIT, LICENSE-APACHE.
const licensePattern = "LICENSE*"

// BuildOptions are the per-invocation inputs to Build.
type BuildOptions struct {
	OutName      string // file prefix override; defaults to the crate name
	Scope        string // npm scope, with or without the leading @
	SkipTypes    bool   // no TypeScript declarations were generated
	Target       Target
	OutputFiles  []string // extra artifacts the build step left in the output directory
	LicenseFiles []string // see LicenseFiles
}

// Build computes the package.json for a validated crate.
func Build(v *manifest.Validated, opts BuildOptions) *Descriptor {
	m := v.SourceManifest
	prefix := opts.OutName
	if prefix == "" {
		prefix = m.CrateName()
	}
	l := opts.Target.layout()

	name := m.PackageName()
	if scope := strings.TrimPrefix(opts.Scope, "@"); scope != "" {
		name = fmt.Sprintf("@%s/%s", scope, name)
	}

	defaults := []string{prefix + "_bg.wasm", prefix + ".js"}
	if l.bgJS {
		defaults = append(defaults, prefix+"_bg.js")
	}

	d := &Descriptor{
		Name:          name,
		Collaborators: slices.Clone(m.Authors),
		Description:   m.Description,
		Version:       m.Version,
		License:       m.License,
		Repository:    m.Repository,
		Homepage:      m.Homepage,
		Keywords:      unique(m.Keywords),
		SideEffects:   false,
	}
	if !opts.SkipTypes {
		d.Types = prefix + ".d.ts"
		defaults = append(defaults, d.Types)
	}
	d.Files = unionFiles(defaults, opts.OutputFiles, opts.LicenseFiles)
	d.setEntry(l.entry, prefix+".js")
	return d
}

// LicenseFiles returns the regular files at the root of crateDir whose names
// match LICENSE*, sorted.
func LicenseFiles(crateDir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(crateDir), licensePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing license files in %s: %w", crateDir, err)
	}
	slices.Sort(matches)
	return matches, nil
}

// unique drops repeated entries, keeping the first occurrence. A nil input
// stays nil so absent keywords are not written.
func unique(in []string) []string {
	if in == nil {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
