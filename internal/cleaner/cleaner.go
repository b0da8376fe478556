// Package cleaner deletes stale files from a folder before it is
// organized. A file is stale when its modification time is strictly
// older than the configured age threshold.
package cleaner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filezen/internal/progress"
)

// CleanResult represents the outcome of one cleanup pass
type CleanResult struct {
	DeletedFiles []string
	DeletedSize  int64
	Examined     int
	Errors       []*DeletionError
	Canceled     bool
}

// Cleaner removes files older than an age threshold
type Cleaner struct {
	ageDays  int
	reporter *progress.Reporter
}

// New creates a Cleaner. An ageDays of zero disables the stage.
func New(ageDays int) *Cleaner {
	return &Cleaner{ageDays: ageDays}
}

// SetProgressReporter sets a progress reporter for cleanup events
func (c *Cleaner) SetProgressReporter(r *progress.Reporter) {
	c.reporter = r
}

// Clean deletes stale regular files at the top level of root. Per-file
// failures are recorded and the pass continues; only a failed directory
// listing aborts. A disabled threshold makes Clean a no-op reporting
// zero deletions. Cancellation via ctx stops the pass between files and
// returns the partial result.
func (c *Cleaner) Clean(ctx context.Context, root string) (*CleanResult, error) {
	result := &CleanResult{
		DeletedFiles: []string{},
		Errors:       []*DeletionError{},
	}

	if c.ageDays <= 0 {
		return result, nil
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list directory %s: %w", root, err)
	}

	threshold := time.Duration(c.ageDays) * 24 * time.Hour
	now := time.Now()

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
			result.Errors = append(result.Errors, CategorizeError(path, err))
			continue
		}
		result.Examined++

		// Strictly older than the threshold; a file exactly at the
		// boundary is kept.
		age := now.Sub(info.ModTime())
		if age <= threshold {
			continue
		}

		if err := os.Remove(path); err != nil {
			delErr := CategorizeError(path, err)
			result.Errors = append(result.Errors, delErr)
			c.report(progress.Event{
				Phase: progress.PhaseCleaning,
				Path:  path,
				Err:   delErr,
			})
			continue
		}

		result.DeletedFiles = append(result.DeletedFiles, path)
		result.DeletedSize += info.Size()
		c.report(progress.Event{
			Phase:     progress.PhaseCleaning,
			Message:   fmt.Sprintf("Deleted old file (%.1f days): %s", age.Hours()/24, dirEntry.Name()),
			Path:      path,
			Processed: len(result.DeletedFiles),
			Bytes:     result.DeletedSize,
		})
	}

	c.report(progress.Event{
		Phase:     progress.PhaseCleaning,
		Message:   fmt.Sprintf("Old-file cleanup complete: %d files removed", len(result.DeletedFiles)),
		Processed: len(result.DeletedFiles),
		Bytes:     result.DeletedSize,
	})

	return result, nil
}

func (c *Cleaner) report(ev progress.Event) {
	if c.reporter == nil {
		return
	}
	c.reporter.Publish(ev)
}
