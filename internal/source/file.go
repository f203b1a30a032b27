// Package source models the host pipeline's files and file collection.
//
// The sorting stage only ever sees the File and Collection interfaces. MemFile
// and MemCollection are the in-memory implementations used by the CLI and by
// tests; a host pipeline can supply its own.
package source

import "strings"

// File is a read-only source file handed over by the host pipeline.
type File interface {
	// Path is the stable identifier of the file.
	Path() string

	// Content returns the full text of the file. It may be called repeatedly.
	Content() string
}

// MemFile is an in-memory File.
type MemFile struct {
	path    string
	content string
}

// NewFile creates an in-memory file.
func NewFile(path, content string) *MemFile {
	return &MemFile{path: path, content: content}
}

// Path implements File.
func (f *MemFile) Path() string { return f.path }

// Content implements File.
func (f *MemFile) Content() string { return f.content }

// HasSuffix reports whether the file path ends with any of the given
// extensions. Extensions are compared as raw suffixes without a leading dot,
// so "js" matches "app.js" and "app.mjs".
func HasSuffix(f File, extensions []string) bool {
	for _, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext != "" && strings.HasSuffix(f.Path(), ext) {
			return true
		}
	}
	return false
}

// Paths returns the paths of the given files in order.
func Paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path()
	}
	return out
}
