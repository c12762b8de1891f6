package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the descriptor's file name inside the output directory.
const FileName = "package.json"

// Write stores d as outDir/package.json.
//
// A primary write (isChild false) creates outDir if needed and replaces any
// existing descriptor. A child write requires outDir to already hold the
// primary's descriptor: the stored file list is unioned with d's and the
// result is written with d's identity and entry field.
func Write(d *Descriptor, outDir string, isChild bool) error {
	if isChild {
		if err := checkChildOutDir(outDir); err != nil {
			return err
		}
		prior, err := Read(outDir)
		if err != nil {
			return err
		}
		merged := *d
		merged.Files = unionFiles(prior.Files, d.Files)
		d = &merged
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(outDir, FileName), data)
}

// Read loads outDir/package.json.
func Read(outDir string) (*Descriptor, error) {
	data, err := os.ReadFile(filepath.Join(outDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &d, nil
}

// Marshal serializes d as indented JSON with a trailing newline. Output is
// deterministic for equal descriptors.
func Marshal(d *Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}

// checkChildOutDir enforces that the primary package was written first.
func checkChildOutDir(outDir string) error {
	info, err := os.Stat(outDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s does not exist", ErrOutputDirectoryMissing, outDir)
	}
	if _, err := os.Stat(filepath.Join(outDir, FileName)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s has no %s", ErrOutputDirectoryMissing, outDir, FileName)
		}
		return fmt.Errorf("checking %s: %w", FileName, err)
	}
	return nil
}

// writeAtomic writes to a temp file in the same directory and renames it
// over path so readers never see a partial descriptor.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s into place: %w", FileName, err)
	}
	return nil
}
