package ui

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Tarnadas/wasm-pack/internal/descriptor"
	"github.com/Tarnadas/wasm-pack/internal/manifest"
)

// captureStderr redirects os.Stderr to a pipe and returns the captured output.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stderr
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = orig

	out, _ := io.ReadAll(r)
	r.Close()
	return string(out)
}

func TestWarning(t *testing.T) {
	p := New()
	w := manifest.Warning{Kind: manifest.UnknownProfileKey, Profile: manifest.ProfileDev, Key: "wasm-bindgen.not-a-real-key"}
	output := captureStderr(t, func() {
		p.Warnings([]manifest.Warning{w})
	})

	want := "[WARN]: :-) " + w.String() + "\n"
	if output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestError(t *testing.T) {
	p := New()
	output := captureStderr(t, func() {
		p.Error("crate-type must be cdylib")
	})
	if output != "error: crate-type must be cdylib\n" {
		t.Errorf("output = %q", output)
	}
}

func TestPackResult(t *testing.T) {
	d := &descriptor.Descriptor{
		Name:    "js-hello-world",
		Version: "0.1.0",
		Module:  "js_hello_world.js",
		Types:   "js_hello_world.d.ts",
		Files:   []string{"js_hello_world.js", "js_hello_world_bg.wasm", "js_hello_world.d.ts"},
	}

	tests := []struct {
		name  string
		child bool
		want  []string
	}{
		{"primary", false, []string{"✓ package", "js-hello-world@0.1.0", "package.json", "module:", "js_hello_world.js", "types:", "files:"}},
		{"child", true, []string{"✓ child package", "js-hello-world@0.1.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureStderr(t, func() {
				New().PackResult(d, "/tmp/pkg", tt.child)
			})
			for _, s := range tt.want {
				if !strings.Contains(output, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestCheckResult(t *testing.T) {
	v := &manifest.Validated{
		SourceManifest: &manifest.SourceManifest{Name: "js-hello-world", Version: "0.1.0"},
		Profile:        manifest.ProfileSettings{Name: manifest.ProfileRelease},
	}
	warnings := []manifest.Warning{{Kind: manifest.UnknownProfile, Profile: "production"}}

	output := captureStderr(t, func() {
		New().CheckResult(v, warnings)
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected warning and summary lines, got:\n%s", output)
	}
	if !strings.HasPrefix(lines[0], "[WARN]: :-) ") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "js-hello-world@0.1.0 is ready to pack (profile release)") {
		t.Errorf("summary = %q", lines[1])
	}
}

func TestWatchLines(t *testing.T) {
	p := New()
	output := captureStderr(t, func() {
		p.WatchStarted("/work/crate")
		p.WatchChange("/work/crate/Cargo.toml")
	})
	for _, s := range []string{"watching /work/crate", "changed Cargo.toml"} {
		if !strings.Contains(output, s) {
			t.Errorf("expected output to contain %q, got:\n%s", s, output)
		}
	}
}
