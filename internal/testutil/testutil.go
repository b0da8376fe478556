// Package testutil provides test helpers and fixtures for filezen
// tests. All file operations use t.TempDir() for safe, isolated
// testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestFixture holds a temporary root folder standing in for the
// directory a user would organize
type TestFixture struct {
	T       *testing.T
	RootDir string // auto-cleaned
}

// NewFixture creates a new test fixture
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()
	return &TestFixture{
		T:       t,
		RootDir: t.TempDir(),
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithAge creates a file and sets its modification time to the past
func (f *TestFixture) CreateFileWithAge(relPath string, content []byte, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateDirWithAge creates a directory with a modification time in the past
func (f *TestFixture) CreateDirWithAge(relPath string, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateDir(relPath)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set dir time for %s: %v", fullPath, err)
	}

	return fullPath
}

// MakeReadOnly strips the write bit from a directory so files inside
// cannot be deleted or moved. Permissions are restored on cleanup so
// TempDir teardown still works.
func (f *TestFixture) MakeReadOnly(relPath string) {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.Chmod(fullPath, 0555); err != nil {
		f.T.Fatalf("failed to chmod %s: %v", fullPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(fullPath, 0755)
	})
}

// =============================================================================
// Path and Assertion Helpers
// =============================================================================

// MakeListOnly strips the search bit from a directory so its entries
// can still be listed but not stat'ed. Permissions are restored on
// cleanup so TempDir teardown still works.
func (f *TestFixture) MakeListOnly(relPath string) {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.Chmod(fullPath, 0644); err != nil {
		f.T.Fatalf("failed to chmod %s: %v", fullPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(fullPath, 0755)
	})
}

// Path returns the full path for a relative path within the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// FileExists checks if a file exists
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// CountEntries returns the number of entries at the top level of a directory
func (f *TestFixture) CountEntries(relPath string) int {
	f.T.Helper()
	entries, err := os.ReadDir(filepath.Join(f.RootDir, relPath))
	if err != nil {
		f.T.Fatalf("failed to read dir %s: %v", relPath, err)
	}
	return len(entries)
}

// =============================================================================
// Skip Helpers
// =============================================================================

// IsRoot returns true if running as root
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}
