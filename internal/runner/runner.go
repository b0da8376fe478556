// Package runner drives a full organize run: an optional cleanup
// pass, a scan of the root folder, then the move pass. It merges the
// per-stage results into one OperationResult.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"filezen/internal/cleaner"
	"filezen/internal/organizer"
	"filezen/internal/progress"
	"filezen/internal/scanner"
)

// Options configures a run
type Options struct {
	SortBySize     bool
	CleanupEnabled bool
	CleanupAgeDays int
}

// Runner executes the cleanup -> scan -> organize pipeline on a root
// folder
type Runner struct {
	root     string
	opts     Options
	reporter *progress.Reporter
}

// New creates a runner for the given root folder. A relative root is
// resolved against the working directory so every recorded path is
// absolute.
func New(root string, opts Options) *Runner {
	// An empty root stays empty so validation still rejects it;
	// filepath.Abs would turn it into the working directory.
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	return &Runner{
		root: root,
		opts: opts,
	}
}

// SetProgressReporter attaches a progress reporter shared with the
// stage workers
func (r *Runner) SetProgressReporter(rep *progress.Reporter) {
	r.reporter = rep
}

// systemPaths are roots that must never be organized. Moving files
// out of these would break the machine.
var systemPaths = []string{
	"/",
	"/bin",
	"/boot",
	"/dev",
	"/etc",
	"/lib",
	"/lib64",
	"/proc",
	"/sbin",
	"/sys",
	"/usr",
	"/var",
	"/System",       // macOS
	"/Applications", // macOS
}

// ValidateRoot checks that the root folder is safe to organize. A
// failure here is the only way a run fails outright.
func ValidateRoot(root string) error {
	if root == "" {
		return &PreconditionError{Root: root, Reason: "no folder selected"}
	}

	for _, p := range systemPaths {
		if root == p {
			return &PreconditionError{Root: root, Reason: "system path is protected"}
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &PreconditionError{Root: root, Reason: "folder does not exist"}
		}
		return &PreconditionError{Root: root, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &PreconditionError{Root: root, Reason: "not a directory"}
	}

	return nil
}

// Run executes the pipeline. Per-file failures are collected on the
// result and never abort the run; only a precondition failure returns
// a non-nil error. Cancellation stops between file operations and
// returns the partial result with a nil error.
func (r *Runner) Run(ctx context.Context) (*OperationResult, error) {
	result := &OperationResult{
		State:     StateIdle,
		StartedAt: time.Now(),
	}

	if err := ValidateRoot(r.root); err != nil {
		result.State = StateFailed
		result.FinishedAt = time.Now()
		r.report(progress.Event{
			Phase:   progress.PhaseError,
			Message: err.Error(),
			Err:     err,
		})
		return result, err
	}

	// Cleanup runs before the scan so deleted files are never
	// scanned or moved
	if r.opts.CleanupEnabled {
		result.State = StateCleaning
		cl := cleaner.New(r.opts.CleanupAgeDays)
		cl.SetProgressReporter(r.reporter)

		cleanRes, err := cl.Clean(ctx, r.root)
		if err != nil {
			return r.finish(result, &ItemError{
				Path:   r.root,
				Stage:  "cleanup",
				Reason: err.Error(),
			})
		}
		result.FilesDeleted = len(cleanRes.DeletedFiles)
		result.BytesDeleted = cleanRes.DeletedSize
		for _, de := range cleanRes.Errors {
			result.Errors = append(result.Errors, &ItemError{
				Path:   de.Path,
				Stage:  "cleanup",
				Reason: de.Reason.String(),
			})
		}
		if cleanRes.Canceled {
			result.Canceled = true
			return r.finish(result, nil)
		}
	}

	result.State = StateScanning
	sc := scanner.New()
	sc.SetProgressReporter(r.reporter)

	scanRes, err := sc.Scan(ctx, r.root)
	if err != nil {
		return r.finish(result, &ItemError{
			Path:   r.root,
			Stage:  "scan",
			Reason: err.Error(),
		})
	}
	for _, se := range scanRes.Errors {
		result.Errors = append(result.Errors, &ItemError{
			Path:   se.Path,
			Stage:  "scan",
			Reason: se.Err.Error(),
		})
	}
	result.FilesProcessed = scanRes.TotalCount
	for _, label := range scanRes.Order {
		bucket := scanRes.Buckets[label]
		var size int64
		for _, e := range bucket {
			size += e.Size
		}
		result.Categories = append(result.Categories, CategorySummary{
			Label: label,
			Count: len(bucket),
			Size:  size,
		})
	}
	if scanRes.Canceled {
		result.Canceled = true
		return r.finish(result, nil)
	}

	result.State = StateOrganizing
	org := organizer.New(r.opts.SortBySize)
	org.SetProgressReporter(r.reporter)

	orgRes, err := org.Organize(ctx, r.root, scanRes)
	if err != nil {
		return r.finish(result, &ItemError{
			Path:   r.root,
			Stage:  "organize",
			Reason: err.Error(),
		})
	}
	result.FilesMoved = len(orgRes.MovedFiles)
	result.BytesMoved = orgRes.MovedSize
	for _, me := range orgRes.Errors {
		result.Errors = append(result.Errors, &ItemError{
			Path:   me.Path,
			Stage:  "organize",
			Reason: me.Err.Error(),
		})
	}
	if orgRes.Canceled {
		result.Canceled = true
	}

	return r.finish(result, nil)
}

// finish stamps the end time and closes out the result. A non-nil
// item error is appended rather than returned: once past validation
// the run always completes.
func (r *Runner) finish(result *OperationResult, itemErr *ItemError) (*OperationResult, error) {
	if itemErr != nil {
		result.Errors = append(result.Errors, itemErr)
	}
	result.State = StateDone
	result.FinishedAt = time.Now()

	r.report(progress.Event{
		Phase: progress.PhaseComplete,
		Message: fmt.Sprintf("Done: %d moved, %d deleted, %d errors",
			result.FilesMoved, result.FilesDeleted, len(result.Errors)),
		Processed: result.FilesProcessed,
		Bytes:     result.BytesMoved,
	})
	return result, nil
}

func (r *Runner) report(ev progress.Event) {
	if r.reporter == nil {
		return
	}
	ev.Time = time.Now()
	r.reporter.Publish(ev)
}
