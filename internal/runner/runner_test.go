package runner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"filezen/internal/progress"
	"filezen/internal/testutil"
)

func TestRunOrganizesMixedFolder(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("report.pdf", []byte("pdf"))
	f.CreateFile("invoice.pdf", []byte("pdf2"))
	f.CreateFile("notes.txt", []byte("text"))
	f.CreateFile("song.mp3", []byte("audio"))
	f.CreateFile("Makefile", []byte("all:"))

	r := New(f.RootDir, Options{})
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.State != StateDone {
		t.Errorf("State = %v, want %v", result.State, StateDone)
	}
	if result.FilesProcessed != 5 {
		t.Errorf("FilesProcessed = %d, want 5", result.FilesProcessed)
	}
	if result.FilesMoved != 5 {
		t.Errorf("FilesMoved = %d, want 5", result.FilesMoved)
	}
	if result.FilesDeleted != 0 {
		t.Errorf("FilesDeleted = %d, want 0", result.FilesDeleted)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}

	f.AssertFileExists(f.Path(filepath.Join("PDF", "report.pdf")))
	f.AssertFileExists(f.Path(filepath.Join("PDF", "invoice.pdf")))
	f.AssertFileExists(f.Path(filepath.Join("TXT", "notes.txt")))
	f.AssertFileExists(f.Path(filepath.Join("MP3", "song.mp3")))
	f.AssertFileExists(f.Path(filepath.Join("OTHER", "Makefile")))
}

func TestRunCategorySummaries(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("a.pdf", []byte("1234"))
	f.CreateFile("b.pdf", []byte("12345678"))
	f.CreateFile("c.txt", []byte("12"))

	r := New(f.RootDir, Options{})
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := map[string]CategorySummary{}
	for _, c := range result.Categories {
		got[c.Label] = c
	}
	if c := got["PDF"]; c.Count != 2 || c.Size != 12 {
		t.Errorf("PDF summary = %+v, want count 2 size 12", c)
	}
	if c := got["TXT"]; c.Count != 1 || c.Size != 2 {
		t.Errorf("TXT summary = %+v, want count 1 size 2", c)
	}
}

func TestRunMissingRootFails(t *testing.T) {
	r := New("/nonexistent/filezen-test-root", Options{})
	result, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if _, ok := err.(*PreconditionError); !ok {
		t.Errorf("error type = %T, want *PreconditionError", err)
	}
	if result.State != StateFailed {
		t.Errorf("State = %v, want %v", result.State, StateFailed)
	}
	if result.FilesMoved != 0 || result.FilesDeleted != 0 {
		t.Errorf("failed run touched files: %+v", result)
	}
}

func TestRunRootIsFile(t *testing.T) {
	f := testutil.NewFixture(t)
	path := f.CreateFile("plain.txt", []byte("not a dir"))

	r := New(path, Options{})
	_, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestValidateRootProtectsSystemPaths(t *testing.T) {
	for _, root := range []string{"/", "/etc", "/usr"} {
		if err := ValidateRoot(root); err == nil {
			t.Errorf("ValidateRoot(%q) = nil, want error", root)
		}
	}
}

func TestRunWithCleanup(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFileWithAge("ancient.log", []byte("stale data"), 45*24*time.Hour)
	f.CreateFile("fresh.log", []byte("new"))
	f.CreateFile("doc.pdf", []byte("pdf"))

	r := New(f.RootDir, Options{
		CleanupEnabled: true,
		CleanupAgeDays: 30,
	})
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.FilesDeleted != 1 {
		t.Errorf("FilesDeleted = %d, want 1", result.FilesDeleted)
	}
	if result.BytesDeleted != 10 {
		t.Errorf("BytesDeleted = %d, want 10", result.BytesDeleted)
	}
	// deleted files must not be scanned or moved
	if result.FilesProcessed != 2 {
		t.Errorf("FilesProcessed = %d, want 2", result.FilesProcessed)
	}
	f.AssertFileNotExists(f.Path("ancient.log"))
	f.AssertFileNotExists(f.Path(filepath.Join("LOG", "ancient.log")))
	f.AssertFileExists(f.Path(filepath.Join("LOG", "fresh.log")))
	f.AssertFileExists(f.Path(filepath.Join("PDF", "doc.pdf")))
}

func TestRunCleanupDisabledKeepsStaleFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFileWithAge("ancient.log", []byte("stale"), 45*24*time.Hour)

	r := New(f.RootDir, Options{})
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.FilesDeleted != 0 {
		t.Errorf("FilesDeleted = %d, want 0", result.FilesDeleted)
	}
	f.AssertFileExists(f.Path(filepath.Join("LOG", "ancient.log")))
}

func TestRunCanceledContext(t *testing.T) {
	f := testutil.NewFixture(t)
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		f.CreateFile(name, []byte("x"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(f.RootDir, Options{})
	result, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v, cancellation must not be an error", err)
	}
	if !result.Canceled {
		t.Error("Canceled = false, want true")
	}
	// The scan stage must stop between entries too, not run to
	// completion after cancellation.
	if result.FilesProcessed != 0 {
		t.Errorf("FilesProcessed = %d, want 0 with pre-canceled context", result.FilesProcessed)
	}
	if result.FilesMoved != 0 {
		t.Errorf("FilesMoved = %d, want 0 with pre-canceled context", result.FilesMoved)
	}
}

func TestRunResolvesRelativeRoot(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("a.txt", []byte("x"))
	t.Chdir(f.RootDir)

	reporter := progress.NewReporter()
	events := reporter.Subscribe()

	r := New(".", Options{})
	r.SetProgressReporter(reporter)
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	reporter.Close()

	if result.FilesMoved != 1 {
		t.Fatalf("FilesMoved = %d, want 1", result.FilesMoved)
	}
	f.AssertFileExists(f.Path(filepath.Join("TXT", "a.txt")))

	for ev := range events {
		if ev.Path != "" && !filepath.IsAbs(ev.Path) {
			t.Errorf("event path %q is not absolute", ev.Path)
		}
	}
}

func TestRunTimestamps(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("a.txt", []byte("x"))

	r := New(f.RootDir, Options{})
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.StartedAt.IsZero() || result.FinishedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if result.FinishedAt.Before(result.StartedAt) {
		t.Error("FinishedAt before StartedAt")
	}
}

func TestRunStateString(t *testing.T) {
	tests := []struct {
		state RunState
		want  string
	}{
		{StateIdle, "idle"},
		{StateCleaning, "cleaning"},
		{StateScanning, "scanning"},
		{StateOrganizing, "organizing"},
		{StateDone, "done"},
		{StateFailed, "failed"},
		{RunState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
