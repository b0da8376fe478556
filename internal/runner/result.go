package runner

import (
	"fmt"
	"time"
)

// RunState tracks where a run is in its lifecycle
type RunState int

const (
	StateIdle RunState = iota
	StateCleaning
	StateScanning
	StateOrganizing
	StateDone
	StateFailed
)

// String returns a human-readable state name
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCleaning:
		return "cleaning"
	case StateScanning:
		return "scanning"
	case StateOrganizing:
		return "organizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PreconditionError is the only error class that fails a whole run.
// It is raised before any file is touched; per-file failures during a
// run are recorded on the result instead.
type PreconditionError struct {
	Root   string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot organize %s: %s", e.Root, e.Reason)
}

// ItemError records a single file that could not be processed. The
// run continues past these.
type ItemError struct {
	Path   string `json:"path" yaml:"path"`
	Stage  string `json:"stage" yaml:"stage"` // "cleanup", "scan" or "organize"
	Reason string `json:"reason" yaml:"reason"`
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Stage, e.Path, e.Reason)
}

// CategorySummary is the per-folder breakdown of a finished run
type CategorySummary struct {
	Label string `json:"label" yaml:"label"` // uppercase folder name, e.g. "PDF"
	Count int    `json:"count" yaml:"count"`
	Size  int64  `json:"size" yaml:"size"`
}

// OperationResult holds the full accounting of one run
type OperationResult struct {
	State          RunState          `json:"-" yaml:"-"`
	FilesProcessed int               `json:"files_processed" yaml:"files_processed"`
	FilesMoved     int               `json:"files_moved" yaml:"files_moved"`
	FilesDeleted   int               `json:"files_deleted" yaml:"files_deleted"`
	BytesMoved     int64             `json:"bytes_moved" yaml:"bytes_moved"`
	BytesDeleted   int64             `json:"bytes_deleted" yaml:"bytes_deleted"`
	Categories     []CategorySummary `json:"categories" yaml:"categories"`
	Errors         []*ItemError      `json:"errors,omitempty" yaml:"errors,omitempty"`
	StartedAt      time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt     time.Time         `json:"finished_at" yaml:"finished_at"`
	Canceled       bool              `json:"canceled,omitempty" yaml:"canceled,omitempty"`
}

// Duration returns how long the run took
func (r *OperationResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// HasErrors returns true if any file failed during the run
func (r *OperationResult) HasErrors() bool {
	return len(r.Errors) > 0
}
