package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/reisraff/angular-filesort/internal/errors"
	"github.com/reisraff/angular-filesort/internal/output"
)

// Loader collects files from disk into a MemCollection.
type Loader struct {
	fs afero.Fs

	// IncludeHidden keeps dot-files and dot-directories found while walking.
	IncludeHidden bool
}

// NewLoader creates a loader over the given filesystem. A nil fs means the OS
// filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load reads every root in order. A file root is added as-is; a directory root
// is walked in lexical order. A path seen twice is kept at its first position.
func (l *Loader) Load(roots ...string) (*MemCollection, error) {
	coll := NewCollection()
	seen := make(map[string]bool)

	add := func(path string) error {
		clean := filepath.Clean(path)
		if seen[clean] {
			output.Debug("skipping duplicate path", "path", clean)
			return nil
		}
		seen[clean] = true

		data, err := afero.ReadFile(l.fs, clean)
		if err != nil {
			return fmt.Errorf("reading %s: %w", clean, err)
		}
		coll.Add(NewFile(filepath.ToSlash(clean), string(data)))
		return nil
	}

	for _, root := range roots {
		info, err := l.fs.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, oerrors.NewNotFoundError(
					fmt.Sprintf("input path %q does not exist", root),
					root,
					"Pass existing files or directories to sort",
				)
			}
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if err := add(root); err != nil {
				return nil, err
			}
			continue
		}

		err = afero.Walk(l.fs, root, func(path string, fi os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if path != root && !l.IncludeHidden && strings.HasPrefix(fi.Name(), ".") {
				if fi.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if fi.IsDir() || !fi.Mode().IsRegular() {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	output.Debug("loaded input files", "roots", len(roots), "files", coll.Len())
	return coll, nil
}
