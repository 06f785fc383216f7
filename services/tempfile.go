package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaevor/go-nanoid"

	"github.com/gbinu42/hudra-media/config"
)

// TempFiles allocates collision-free temp file paths under a single injected
// root directory. Uniqueness comes from random identifiers rather than a
// counter, so concurrent requests never race on a name.
type TempFiles struct {
	root  string
	newID func() string
}

// NewTempFiles creates the manager and its root directory.
func NewTempFiles(root string) (*TempFiles, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	gen, err := nanoid.Standard(config.TempIDLength)
	if err != nil {
		return nil, err
	}
	return &TempFiles{root: root, newID: gen}, nil
}

// Root returns the temp root directory.
func (t *TempFiles) Root() string {
	return t.root
}

// Allocate returns a unique path with the given prefix and extension.
func (t *TempFiles) Allocate(prefix, ext string) string {
	name := prefix + "_" + t.newID()
	if ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	return filepath.Join(t.root, name)
}

// Claim returns a unique base name without an extension, a claim ticket for
// tools that choose their own output extension. Locate resolves the ticket
// to the produced file.
func (t *TempFiles) Claim(prefix string) string {
	return prefix + "_" + t.newID()
}

// PathFor joins a claimed base name onto the temp root.
func (t *TempFiles) PathFor(base string) string {
	return filepath.Join(t.root, base)
}

// Locate scans the temp root for the first entry whose name starts with the
// claimed base, then retries the known audio extensions against the expected
// base path before reporting the file missing.
func (t *TempFiles) Locate(base string) (string, error) {
	entries, err := os.ReadDir(t.root)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasPrefix(entry.Name(), base) {
				return filepath.Join(t.root, entry.Name()), nil
			}
		}
	}

	for _, ext := range config.KnownAudioExtensions {
		candidate := filepath.Join(t.root, base+"."+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", &FileNotFoundError{Prefix: base}
}

// Release deletes a temp file. It is idempotent: releasing a path that is
// already gone is not an error.
func (t *TempFiles) Release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		// Leave it for the cleanup sweep.
		return
	}
}
