// Package pack runs the descriptor pipeline for one crate: locate and read
// Cargo.toml, validate it, then build and write package.json.
package pack

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Tarnadas/wasm-pack/internal/descriptor"
	"github.com/Tarnadas/wasm-pack/internal/manifest"
)

// DefaultOutDir is the output directory used when none is configured,
// relative to the crate directory.
const DefaultOutDir = "pkg"

// Options are the invocation parameters of one synthesis run.
type Options struct {
	Path        string // directory to start looking for Cargo.toml in
	Recurse     bool   // also search ancestors of Path
	OutDir      string // relative paths resolve against the crate directory
	OutName     string
	Scope       string
	SkipTypes   bool
	Target      descriptor.Target
	Profile     string
	IsChild     bool
	OutputFiles []string // artifacts the build step produced in OutDir
}

// Result describes a completed run.
type Result struct {
	CrateDir   string
	OutDir     string
	Manifest   *manifest.Validated
	Descriptor *descriptor.Descriptor
	Warnings   []manifest.Warning
}

// Packer runs the pipeline. The zero value discards log output.
type Packer struct {
	Logger *log.Logger
}

// New returns a Packer that logs pipeline stages to logger.
func New(logger *log.Logger) *Packer {
	return &Packer{Logger: logger}
}

func (p *Packer) logger() *log.Logger {
	if p.Logger == nil {
		return log.New(io.Discard)
	}
	return p.Logger
}

// Check locates, reads and validates the crate without writing anything.
// Warnings are returned alongside a nil error when validation passes.
func (p *Packer) Check(path string, recurse bool, profile string) (*manifest.Validated, []manifest.Warning, error) {
	logger := p.logger()

	crateDir, err := manifest.Locate(path, recurse)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("found manifest", "dir", crateDir)

	m, err := manifest.Read(filepath.Join(crateDir, manifest.FileName))
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("parsed manifest", "crate", m.Name, "version", m.Version)

	v, warnings, err := manifest.Validate(m, profile)
	for _, w := range warnings {
		logger.Debug("config warning", "warning", w.String())
	}
	if err != nil {
		return nil, warnings, err
	}
	logger.Debug("validated crate config", "profile", v.Profile.Name)
	return v, warnings, nil
}

// Synthesize runs the full pipeline and writes package.json.
//
// On failure the returned Result is still non-nil and carries the warnings
// collected before the error, so callers can report them; its other fields
// are set only as far as the pipeline got.
func (p *Packer) Synthesize(opts Options) (*Result, error) {
	logger := p.logger()

	v, warnings, err := p.Check(opts.Path, opts.Recurse, opts.Profile)
	if err != nil {
		return &Result{Warnings: warnings}, err
	}
	res := &Result{CrateDir: v.Dir, Manifest: v, Warnings: warnings}

	licenses, err := descriptor.LicenseFiles(v.Dir)
	if err != nil {
		return res, err
	}

	d := descriptor.Build(v, descriptor.BuildOptions{
		OutName:      opts.OutName,
		Scope:        opts.Scope,
		SkipTypes:    opts.SkipTypes,
		Target:       opts.Target,
		OutputFiles:  opts.OutputFiles,
		LicenseFiles: licenses,
	})
	kind, entry := d.Entry()
	logger.Debug("built descriptor", "name", d.Name, "target", opts.Target, string(kind), entry, "files", len(d.Files))

	res.OutDir = ResolveOutDir(v.Dir, opts.OutDir)
	res.Descriptor = d
	if err := descriptor.Write(d, res.OutDir, opts.IsChild); err != nil {
		return res, fmt.Errorf("writing descriptor for %s: %w", v.Name, err)
	}
	logger.Debug("wrote "+descriptor.FileName, "path", filepath.Join(res.OutDir, descriptor.FileName), "child", opts.IsChild)

	return res, nil
}

// ResolveOutDir anchors a relative output directory at the crate directory.
func ResolveOutDir(crateDir, outDir string) string {
	if outDir == "" {
		outDir = DefaultOutDir
	}
	if filepath.IsAbs(outDir) {
		return filepath.Clean(outDir)
	}
	return filepath.Join(crateDir, outDir)
}
