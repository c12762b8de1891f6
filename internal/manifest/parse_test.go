package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const helloWorldToml = `
[package]
authors = ["The wasm-pack developers"]
description = "so awesome rust+wasm package"
license = "WTFPL"
name = "js-hello-world"
repository = "https://github.com/rustwasm/wasm-pack.git"
version = "0.1.0"

[lib]
crate-type = ["cdylib"]

[dependencies]
wasm-bindgen = "=0.2"

[dev-dependencies]
wasm-bindgen-test = "=0.2"
`

func writeCrate(t *testing.T, dir, toml string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := Read(writeCrate(t, dir, helloWorldToml))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if m.Name != "js-hello-world" {
		t.Errorf("Name = %q, want js-hello-world", m.Name)
	}
	if m.CrateName() != "js_hello_world" {
		t.Errorf("CrateName() = %q", m.CrateName())
	}
	if m.Version != "0.1.0" {
		t.Errorf("Version = %q", m.Version)
	}
	if m.Description == nil || *m.Description != "so awesome rust+wasm package" {
		t.Errorf("Description = %v", m.Description)
	}
	wantRepo := &Repository{Type: "git", URL: "https://github.com/rustwasm/wasm-pack.git"}
	if diff := cmp.Diff(wantRepo, m.Repository); diff != "" {
		t.Errorf("Repository mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"The wasm-pack developers"}, m.Authors); diff != "" {
		t.Errorf("Authors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cdylib"}, m.CrateTypes); diff != "" {
		t.Errorf("CrateTypes mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m.Dependencies["wasm-bindgen"]; !ok {
		t.Error("wasm-bindgen dependency missing")
	}
	if _, ok := m.Dependencies["wasm-bindgen-test"]; ok {
		t.Error("dev-dependencies must not be merged into dependencies")
	}
	if m.Dir != dir {
		t.Errorf("Dir = %q, want %q", m.Dir, dir)
	}
}

func TestParseOptionalFieldsStayAbsent(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`
[package]
name = "bare"
version = "1.0.0"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Description != nil || m.License != nil || m.Homepage != nil || m.Repository != nil {
		t.Errorf("optional fields should be nil: %+v", m)
	}
	if m.Keywords != nil {
		t.Errorf("Keywords = %v, want nil", m.Keywords)
	}
	if len(m.Authors) != 0 {
		t.Errorf("Authors = %v, want empty", m.Authors)
	}
}

func TestParseTableDependency(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`
[package]
name = "serde-feature"
version = "0.1.0"

[dependencies.wasm-bindgen]
version = "^0.2"
features = ["serde-serialize"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dep := m.Dependencies["wasm-bindgen"]
	if dep.Version != "^0.2" {
		t.Errorf("Version = %q", dep.Version)
	}
	if !dep.HasFeature("serde-serialize") {
		t.Errorf("Features = %v", dep.Features)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		toml      string
		wantField string
	}{
		{
			name:      "missing package section",
			toml:      "[lib]\ncrate-type = [\"cdylib\"]\n",
			wantField: "package",
		},
		{
			name:      "missing name",
			toml:      "[package]\nversion = \"0.1.0\"\n",
			wantField: "package.name",
		},
		{
			name:      "empty name",
			toml:      "[package]\nname = \"\"\nversion = \"0.1.0\"\n",
			wantField: "package.name",
		},
		{
			name:      "empty version",
			toml:      "[package]\nname = \"x\"\nversion = \"\"\n",
			wantField: "package.version",
		},
		{
			name:      "version is not a string",
			toml:      "[package]\nname = \"x\"\nversion = 1\n",
			wantField: "package.version",
		},
		{
			name:      "name is not a string",
			toml:      "[package]\nname = 1\nversion = \"0.1.0\"\n",
			wantField: "package.name",
		},
		{
			name:      "crate-type is a string",
			toml:      "[package]\nname = \"x\"\nversion = \"0.1.0\"\n[lib]\ncrate-type = \"cdylib\"\n",
			wantField: "lib.crate-type",
		},
		{
			name:      "keyword is not a string",
			toml:      "[package]\nname = \"x\"\nversion = \"0.1.0\"\nkeywords = [\"wasm\", 3]\n",
			wantField: "package.keywords[1]",
		},
		{
			name:      "dependency is a number",
			toml:      "[package]\nname = \"x\"\nversion = \"0.1.0\"\n[dependencies]\nwasm-bindgen = 2\n",
			wantField: "dependencies.wasm-bindgen",
		},
		{
			name:      "profile section is not a table",
			toml:      "[package]\nname = \"x\"\nversion = \"0.1.0\"\n[package.metadata.wasm-pack]\nprofile = true\n",
			wantField: "package.metadata.wasm-pack.profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, ErrManifestParse) {
				t.Fatalf("err = %v, want ErrManifestParse", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %T, want *ParseError", err)
			}
			if pe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", pe.Field, tt.wantField)
			}
		})
	}
}

func TestParseMalformedToml(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("[package\nname = \"x\"\n"))
	if !errors.Is(err, ErrManifestParse) {
		t.Fatalf("err = %v, want ErrManifestParse", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %T, want *ParseError", err)
	}
	if pe.Line != 1 {
		t.Errorf("Line = %d, want 1", pe.Line)
	}
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, ErrManifestNotFound) {
		t.Errorf("err = %v, want ErrManifestNotFound", err)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeCrate(t, root, helloWorldToml)
	src := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("finds manifest in start directory", func(t *testing.T) {
		t.Parallel()
		got, err := Locate(root, false)
		if err != nil {
			t.Fatalf("Locate: %v", err)
		}
		if got != root {
			t.Errorf("Locate = %q, want %q", got, root)
		}
	})

	t.Run("recurses to an ancestor", func(t *testing.T) {
		t.Parallel()
		got, err := Locate(src, true)
		if err != nil {
			t.Fatalf("Locate: %v", err)
		}
		if got != root {
			t.Errorf("Locate = %q, want %q", got, root)
		}
	})

	t.Run("does not recurse by default", func(t *testing.T) {
		t.Parallel()
		_, err := Locate(src, false)
		if !errors.Is(err, ErrManifestNotFound) {
			t.Errorf("err = %v, want ErrManifestNotFound", err)
		}
	})

	t.Run("directory named Cargo.toml is not a manifest", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, FileName), 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := Locate(dir, false)
		if !errors.Is(err, ErrManifestNotFound) {
			t.Errorf("err = %v, want ErrManifestNotFound", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeCrate(t, root, helloWorldToml)

	m, err := Load(filepath.Join(root, "."), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasSuffix(m.Dir, filepath.Base(root)) {
		t.Errorf("Dir = %q, want suffix %q", m.Dir, filepath.Base(root))
	}
}

func TestParseMissingVersionDefaults(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte("[package]\nname = \"x\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", m.Version, DefaultVersion)
	}
}
