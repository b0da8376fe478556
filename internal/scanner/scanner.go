// Package scanner walks the immediate contents of a root folder and
// groups files into category buckets keyed by extension.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filezen/internal/classify"
	"filezen/internal/progress"
)

// FileEntry represents one file discovered during a scan
type FileEntry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"` // absolute
	Category string    `json:"category"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
}

// EntryError records an entry whose metadata could not be read
type EntryError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *EntryError) Unwrap() error {
	return e.Err
}

// ScanResult holds the category buckets produced by one scan.
// Buckets and entries keep directory-listing order; Order records the
// sequence in which categories were first seen so reports stay
// deterministic for a given listing.
type ScanResult struct {
	Buckets    map[string][]FileEntry
	Order      []string
	TotalCount int
	TotalSize  int64
	Errors     []*EntryError
	Canceled   bool
}

// Entries returns all entries across buckets in category order
func (r *ScanResult) Entries() []FileEntry {
	entries := make([]FileEntry, 0, r.TotalCount)
	for _, category := range r.Order {
		entries = append(entries, r.Buckets[category]...)
	}
	return entries
}

func (r *ScanResult) add(entry FileEntry) {
	if _, ok := r.Buckets[entry.Category]; !ok {
		r.Order = append(r.Order, entry.Category)
	}
	r.Buckets[entry.Category] = append(r.Buckets[entry.Category], entry)
	r.TotalCount++
	r.TotalSize += entry.Size
}

// Scanner scans one directory level
type Scanner struct {
	reporter *progress.Reporter
}

// New creates a new Scanner
func New() *Scanner {
	return &Scanner{}
}

// SetProgressReporter sets a progress reporter for scan events
func (s *Scanner) SetProgressReporter(r *progress.Reporter) {
	s.reporter = r
}

// Scan reads exactly one directory level of root and buckets every
// regular entry by category. Subdirectories are skipped, including
// category folders left by a previous run, so organized files are
// never re-scanned. Entries whose metadata cannot be read are recorded
// as errors and excluded; the scan itself only fails if the directory
// listing fails. Cancellation via ctx stops between entries and
// returns the partial buckets.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	result := &ScanResult{
		Buckets: make(map[string][]FileEntry),
		Order:   []string{},
		Errors:  []*EntryError{},
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list directory %s: %w", root, err)
	}

	for _, dirEntry := range dirEntries {
		if err := ctx.Err(); err != nil {
			result.Canceled = true
			break
		}

		if dirEntry.IsDir() {
			continue
		}

		path := filepath.Join(root, dirEntry.Name())

		info, err := dirEntry.Info()
		if err != nil {
			result.Errors = append(result.Errors, &EntryError{Path: path, Err: err})
			continue
		}

		entry := FileEntry{
			Name:     dirEntry.Name(),
			Path:     path,
			Category: classify.Category(dirEntry.Name()),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		}
		result.add(entry)

		s.report(progress.Event{
			Phase:     progress.PhaseScanning,
			Path:      path,
			Processed: result.TotalCount,
			Bytes:     result.TotalSize,
		})
	}

	s.report(progress.Event{
		Phase:     progress.PhaseScanning,
		Message:   fmt.Sprintf("Scanned: %d files in %d groups", result.TotalCount, len(result.Order)),
		Processed: result.TotalCount,
		Bytes:     result.TotalSize,
	})

	return result, nil
}

func (s *Scanner) report(ev progress.Event) {
	if s.reporter == nil {
		return
	}
	s.reporter.Publish(ev)
}
