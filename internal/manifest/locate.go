package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// Locate returns the directory holding Cargo.toml, starting at start. When
// recurse is true each ancestor is checked in turn until the filesystem root;
// otherwise only start itself is checked.
func Locate(start string, recurse bool) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if hasManifest(dir) {
			return dir, nil
		}
		if !recurse {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w: searched from %s", ErrManifestNotFound, start)
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}
