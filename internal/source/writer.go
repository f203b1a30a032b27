package source

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/reisraff/angular-filesort/internal/output"
)

// DefaultSeparator is written between concatenated files.
const DefaultSeparator = "\n"

// WriteBundle concatenates files in order, writing sep between consecutive files.
func WriteBundle(w io.Writer, files []File, sep string) error {
	for i, f := range files {
		if i > 0 && sep != "" {
			if _, err := io.WriteString(w, sep); err != nil {
				return fmt.Errorf("writing separator: %w", err)
			}
		}
		if _, err := io.WriteString(w, f.Content()); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path(), err)
		}
	}
	return nil
}

// WriteBundleFile writes the concatenated bundle to dest on fs, creating parent
// directories as needed.
func WriteBundleFile(fs afero.Fs, dest string, files []File, sep string) (err error) {
	if err := fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := fs.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dest, cerr)
		}
	}()

	return WriteBundle(f, files, sep)
}

// WriteNumbered copies each file into dir, prefixing its base name with its
// zero-padded position so a lexical listing reproduces the order.
// Files are named <NNN>-<base>. It returns the written paths in order.
func WriteNumbered(fs afero.Fs, dir string, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	width := len(fmt.Sprint(len(files)))
	if width < 3 {
		width = 3
	}

	written := make([]string, 0, len(files))
	for i, f := range files {
		dest := filepath.Join(dir, fmt.Sprintf("%0*d-%s", width, i+1, sanitizeName(path.Base(f.Path()))))

		if err := afero.WriteFile(fs, dest, []byte(f.Content()), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", dest, err)
		}
		output.Debug("wrote numbered file", "source", f.Path(), "file", dest)
		written = append(written, dest)
	}

	return written, nil
}

// sanitizeName makes a name safe for use in filenames.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "",
		"<", "",
		">", "",
		"|", "-",
	)
	return replacer.Replace(name)
}
