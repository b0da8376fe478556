// Package organizer moves scanned files into category subfolders under
// the root, creating the folders as needed and renaming on collision.
package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"filezen/internal/progress"
	"filezen/internal/scanner"
)

// MoveError records a failed move or a category folder that could not
// be created
type MoveError struct {
	Path string // source file
	Dest string // intended destination directory or file
	Err  error
}

// Error implements the error interface
func (e *MoveError) Error() string {
	return fmt.Sprintf("%s -> %s: %v", e.Path, e.Dest, e.Err)
}

// Unwrap returns the underlying error
func (e *MoveError) Unwrap() error {
	return e.Err
}

// OrganizeResult represents the outcome of one organize pass
type OrganizeResult struct {
	MovedFiles []string
	MovedSize  int64
	Errors     []*MoveError
	Canceled   bool
}

// Organizer moves category buckets into their subfolders
type Organizer struct {
	sortBySize bool
	reporter   *progress.Reporter
}

// New creates an Organizer. When sortBySize is set, each bucket is
// stably sorted by file size ascending before its files are moved.
func New(sortBySize bool) *Organizer {
	return &Organizer{sortBySize: sortBySize}
}

// SetProgressReporter sets a progress reporter for move events
func (o *Organizer) SetProgressReporter(r *progress.Reporter) {
	o.reporter = r
}

// Organize moves every bucketed file into root/<category>. A category
// folder that cannot be created fails only that category's files; a
// failed move fails only that file. Already-moved files stay moved on
// partial failure. Cancellation via ctx stops between files and
// returns the partial result.
func (o *Organizer) Organize(ctx context.Context, root string, scan *scanner.ScanResult) (*OrganizeResult, error) {
	result := &OrganizeResult{
		MovedFiles: []string{},
		Errors:     []*MoveError{},
	}

	for _, category := range scan.Order {
		bucket := scan.Buckets[category]
		if len(bucket) == 0 {
			continue
		}

		if o.sortBySize {
			sort.SliceStable(bucket, func(i, j int) bool {
				return bucket[i].Size < bucket[j].Size
			})
		}

		target := filepath.Join(root, category)
		if err := os.MkdirAll(target, 0755); err != nil {
			// Category-scoped failure: every file headed here is
			// recorded, other categories proceed.
			for _, entry := range bucket {
				result.Errors = append(result.Errors, &MoveError{
					Path: entry.Path,
					Dest: target,
					Err:  fmt.Errorf("create category folder: %w", err),
				})
			}
			o.report(progress.Event{
				Phase: progress.PhaseOrganizing,
				Path:  target,
				Err:   err,
			})
			continue
		}

		for _, entry := range bucket {
			if err := ctx.Err(); err != nil {
				result.Canceled = true
				return result, nil
			}

			dest := collisionPath(target, entry.Name)
			if err := moveFile(entry.Path, dest); err != nil {
				moveErr := &MoveError{Path: entry.Path, Dest: dest, Err: err}
				result.Errors = append(result.Errors, moveErr)
				o.report(progress.Event{
					Phase: progress.PhaseOrganizing,
					Path:  entry.Path,
					Err:   moveErr,
				})
				continue
			}

			result.MovedFiles = append(result.MovedFiles, dest)
			result.MovedSize += entry.Size
			o.report(progress.Event{
				Phase:     progress.PhaseOrganizing,
				Message:   fmt.Sprintf("Moved: %s -> %s/", entry.Name, category),
				Path:      dest,
				Processed: len(result.MovedFiles),
				Bytes:     result.MovedSize,
			})
		}
	}

	o.report(progress.Event{
		Phase:     progress.PhaseOrganizing,
		Message:   fmt.Sprintf("Organization complete: %d files moved", len(result.MovedFiles)),
		Processed: len(result.MovedFiles),
		Bytes:     result.MovedSize,
	})

	return result, nil
}

// collisionPath returns dir/name, or the first free dir/name_N variant
// with the numeric suffix inserted before the extension.
func collisionPath(dir, name string) string {
	dest := filepath.Join(dir, name)
	if !exists(dest) {
		return dest
	}

	ext := filepath.Ext(name)
	if ext == name {
		// Dotfile with no further extension: suffix goes at the end
		// (".gitignore" -> ".gitignore_1", not "_1.gitignore").
		ext = ""
	}
	base := name[:len(name)-len(ext)]
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (o *Organizer) report(ev progress.Event) {
	if o.reporter == nil {
		return
	}
	o.reporter.Publish(ev)
}
