package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Read parses the Cargo.toml at path. The returned manifest records the
// directory it was read from.
func Read(path string) (*SourceManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Load locates Cargo.toml from dir (see Locate) and parses it.
func Load(dir string, recurse bool) (*SourceManifest, error) {
	crateDir, err := Locate(dir, recurse)
	if err != nil {
		return nil, err
	}
	return Read(filepath.Join(crateDir, FileName))
}

// Parse decodes Cargo.toml bytes. Sections the packager does not read are
// ignored; known fields with the wrong type fail with a *ParseError.
func Parse(data []byte) (*SourceManifest, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, decodeError(err)
	}
	root := section{path: "", values: doc}

	pkg, ok, err := root.table("package")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missing("package")
	}

	m := &SourceManifest{}
	if m.Name, err = pkg.required("name"); err != nil {
		return nil, err
	}
	if m.Version, err = version(pkg); err != nil {
		return nil, err
	}
	if m.Description, err = pkg.optional("description"); err != nil {
		return nil, err
	}
	if m.License, err = pkg.optional("license"); err != nil {
		return nil, err
	}
	if m.Homepage, err = pkg.optional("homepage"); err != nil {
		return nil, err
	}
	repo, err := pkg.optional("repository")
	if err != nil {
		return nil, err
	}
	if repo != nil {
		m.Repository = &Repository{Type: "git", URL: *repo}
	}
	if m.Authors, _, err = pkg.stringList("authors"); err != nil {
		return nil, err
	}
	if m.Keywords, _, err = pkg.stringList("keywords"); err != nil {
		return nil, err
	}
	if m.WasmPack, err = wasmPackMetadata(pkg); err != nil {
		return nil, err
	}

	lib, ok, err := root.table("lib")
	if err != nil {
		return nil, err
	}
	if ok {
		if m.CrateTypes, _, err = lib.stringList("crate-type"); err != nil {
			return nil, err
		}
	}

	if m.Dependencies, err = dependencies(root); err != nil {
		return nil, err
	}
	return m, nil
}

// version reads package.version. Cargo treats an absent version as 0.0.0.
func version(pkg section) (string, error) {
	v, err := pkg.optional("version")
	if err != nil {
		return "", err
	}
	if v == nil {
		return DefaultVersion, nil
	}
	if strings.TrimSpace(*v) == "" {
		return "", missing(pkg.key("version"))
	}
	return *v, nil
}

func wasmPackMetadata(pkg section) (map[string]any, error) {
	metadata, ok, err := pkg.table("metadata")
	if err != nil || !ok {
		return nil, err
	}
	wp, ok, err := metadata.table("wasm-pack")
	if err != nil || !ok {
		return nil, err
	}
	if _, _, err := wp.table("profile"); err != nil {
		return nil, err
	}
	return wp.values, nil
}

func dependencies(root section) (map[string]Dependency, error) {
	deps, ok, err := root.table("dependencies")
	if err != nil || !ok {
		return nil, err
	}

	out := make(map[string]Dependency, len(deps.values))
	for name, raw := range deps.values {
		switch v := raw.(type) {
		case string:
			out[name] = Dependency{Version: v}
		case map[string]any:
			dep := section{path: deps.key(name), values: v}
			version, err := dep.optional("version")
			if err != nil {
				return nil, err
			}
			features, _, err := dep.stringList("features")
			if err != nil {
				return nil, err
			}
			d := Dependency{Features: features}
			if version != nil {
				d.Version = *version
			}
			out[name] = d
		default:
			return nil, mistyped(deps.key(name), "a version string or table", raw)
		}
	}
	return out, nil
}

// section is a decoded TOML table together with its dotted path, used to
// build field paths for errors.
type section struct {
	path   string
	values map[string]any
}

func (s section) key(name string) string {
	if s.path == "" {
		return name
	}
	return s.path + "." + name
}

func (s section) table(name string) (section, bool, error) {
	raw, ok := s.values[name]
	if !ok {
		return section{}, false, nil
	}
	t, ok := raw.(map[string]any)
	if !ok {
		return section{}, false, mistyped(s.key(name), "a table", raw)
	}
	return section{path: s.key(name), values: t}, true, nil
}

func (s section) optional(name string) (*string, error) {
	raw, ok := s.values[name]
	if !ok {
		return nil, nil
	}
	v, ok := raw.(string)
	if !ok {
		return nil, mistyped(s.key(name), "a string", raw)
	}
	return &v, nil
}

func (s section) required(name string) (string, error) {
	v, err := s.optional(name)
	if err != nil {
		return "", err
	}
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", missing(s.key(name))
	}
	return *v, nil
}

func (s section) stringList(name string) ([]string, bool, error) {
	raw, ok := s.values[name]
	if !ok {
		return nil, false, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false, mistyped(s.key(name), "an array of strings", raw)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		v, ok := item.(string)
		if !ok {
			return nil, false, mistyped(fmt.Sprintf("%s[%d]", s.key(name), i), "a string", item)
		}
		out = append(out, v)
	}
	return out, true, nil
}

func missing(field string) error {
	return &ParseError{Field: field, Err: errors.New("missing required field")}
}

func mistyped(field, want string, got any) error {
	return &ParseError{Field: field, Err: fmt.Errorf("expected %s, found %s", want, describeValue(got))}
}

// decodeError converts a go-toml syntax error into a *ParseError carrying the
// key path and line the decoder stopped at.
func decodeError(err error) error {
	var de *toml.DecodeError
	if !errors.As(err, &de) {
		return &ParseError{Field: "(document)", Err: err}
	}
	field := strings.Join(de.Key(), ".")
	if field == "" {
		field = "(document)"
	}
	row, _ := de.Position()
	return &ParseError{Field: field, Line: row, Err: err}
}
