// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// envVars are the NGSORT_ variables a test must not inherit.
var envVars = []string{
	"NGSORT_CONFIG",
	"NGSORT_EXTENSIONS",
	"NGSORT_SEPARATOR",
	"NGSORT_WORKERS",
	"NGSORT_STRICT",
	"NGSORT_REPORTUNRESOLVED",
	"NGSORT_PATTERNS_CORE",
	"NGSORT_PATTERNS_MODULE",
	"NGSORT_PATTERNS_GLOBAL",
	"NGSORT_LOG_TIMESTAMPS",
}

// Isolate points HOME at a fresh directory, clears NGSORT_ variables and
// moves into an empty working directory so no .env file is picked up.
// It returns the new HOME.
func Isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range envVars {
		t.Setenv(name, "")
	}
	t.Chdir(t.TempDir())
	return home
}

// FixturePath returns the absolute path to a test fixture.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	// Walk up to find testdata/fixtures at the module root.
	dir := wd
	for {
		fixturesPath := filepath.Join(dir, "testdata", "fixtures")
		if _, err := os.Stat(fixturesPath); err == nil {
			return filepath.Join(append([]string{fixturesPath}, parts...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find testdata/fixtures directory from %s", wd)
		}
		dir = parent
	}
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Module returns a source line declaring an AngularJS module.
func Module(name string, deps ...string) string {
	quoted := make([]string, len(deps))
	for i, d := range deps {
		quoted[i] = "'" + d + "'"
	}
	return fmt.Sprintf("angular.module('%s', [%s]);\n", name, strings.Join(quoted, ", "))
}

// CopyFixture copies a fixture directory to a temporary location.
func CopyFixture(t *testing.T, fixtureName string) string {
	t.Helper()
	src := FixturePath(t, fixtureName)
	dst := t.TempDir()

	if err := copyDir(src, dst); err != nil {
		t.Fatalf("failed to copy fixture %s: %v", fixtureName, err)
	}
	return dst
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(dstPath, info.Mode())
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(dstPath, data, info.Mode())
	})
}
