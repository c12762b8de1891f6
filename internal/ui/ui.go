// Package ui prints user-facing status lines to stderr.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tarnadas/wasm-pack/internal/ansi"
	"github.com/Tarnadas/wasm-pack/internal/descriptor"
	"github.com/Tarnadas/wasm-pack/internal/manifest"
)

// Printer writes human-readable progress and results to stderr.
type Printer struct{}

// New returns a Printer.
func New() *Printer {
	return &Printer{}
}

// Warning prints a non-fatal configuration problem.
func (p *Printer) Warning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ansi.Paint("[WARN]: :-)", ansi.Bold, ansi.Yellow), msg)
}

// Warnings prints every validation warning in order.
func (p *Printer) Warnings(warnings []manifest.Warning) {
	for _, w := range warnings {
		p.Warning(w.String())
	}
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ansi.Paint("error:", ansi.Bold, ansi.Red), msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ansi.Paint("[INFO]:", ansi.Cyan), msg)
}

// PackResult summarizes a written package.json.
func (p *Printer) PackResult(d *descriptor.Descriptor, outDir string, child bool) {
	what := "package"
	if child {
		what = "child package"
	}
	path := filepath.Join(outDir, descriptor.FileName)
	fmt.Fprintf(os.Stderr, "%s %s@%s — %s\n", ansi.Paint("✓ "+what, ansi.Bold, ansi.Green), d.Name, d.Version, path)

	if kind, entry := d.Entry(); entry != "" {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", ansi.Paint(string(kind)+":", ansi.Dim), entry)
	}
	if d.Types != "" {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", ansi.Paint("types:", ansi.Dim), d.Types)
	}
	fmt.Fprintf(os.Stderr, "  %-8s %d\n", ansi.Paint("files:", ansi.Dim), len(d.Files))
}

// CheckResult reports a crate that passed validation, after its warnings.
func (p *Printer) CheckResult(v *manifest.Validated, warnings []manifest.Warning) {
	p.Warnings(warnings)
	fmt.Fprintf(os.Stderr, "%s %s@%s is ready to pack (profile %s)\n",
		ansi.Paint("✓ crate", ansi.Bold, ansi.Green), v.Name, v.Version, v.Profile.Name)
}

// WatchStarted announces that a directory is being watched.
func (p *Printer) WatchStarted(dir string) {
	fmt.Fprintf(os.Stderr, "%s %s %s\n", ansi.Paint("watching", ansi.Bold, ansi.Cyan), dir, ansi.Paint("(ctrl-c to stop)", ansi.Dim))
}

// WatchChange reports the file that triggered a regeneration.
func (p *Printer) WatchChange(file string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ansi.Paint("changed", ansi.Yellow), filepath.Base(file))
}
