package cleaner

import (
	"context"
	"testing"
	"time"

	"filezen/internal/progress"
	"filezen/internal/testutil"
)

func TestCleanDeletesStaleFiles(t *testing.T) {
	f := testutil.NewFixture(t)

	stale := f.CreateFileWithAge("stale.log", []byte("old"), 40*24*time.Hour)
	fresh := f.CreateFile("fresh.txt", []byte("new"))

	result, err := New(30).Clean(context.Background(), f.RootDir)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if len(result.DeletedFiles) != 1 {
		t.Fatalf("DeletedFiles = %d, want 1", len(result.DeletedFiles))
	}
	if result.DeletedFiles[0] != stale {
		t.Errorf("deleted %q, want %q", result.DeletedFiles[0], stale)
	}
	if result.DeletedSize != 3 {
		t.Errorf("DeletedSize = %d, want 3", result.DeletedSize)
	}

	f.AssertFileNotExists(stale)
	f.AssertFileExists(fresh)
}

func TestCleanThresholdBoundary(t *testing.T) {
	f := testutil.NewFixture(t)

	// Exactly at the threshold (with a small margin so the clock cannot
	// push the file over the line mid-test): must be kept.
	atBoundary := f.CreateFileWithAge("boundary.txt", []byte("b"), 30*24*time.Hour-2*time.Second)
	// One day older: must be deleted.
	older := f.CreateFileWithAge("older.txt", []byte("o"), 31*24*time.Hour)

	result, err := New(30).Clean(context.Background(), f.RootDir)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if len(result.DeletedFiles) != 1 {
		t.Fatalf("DeletedFiles = %d, want 1", len(result.DeletedFiles))
	}

	f.AssertFileExists(atBoundary)
	f.AssertFileNotExists(older)
}

func TestCleanDisabledIsNoOp(t *testing.T) {
	f := testutil.NewFixture(t)

	old := f.CreateFileWithAge("ancient.txt", []byte("a"), 365*24*time.Hour)

	result, err := New(0).Clean(context.Background(), f.RootDir)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if len(result.DeletedFiles) != 0 {
		t.Errorf("DeletedFiles = %d, want 0", len(result.DeletedFiles))
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %d, want 0", len(result.Errors))
	}

	f.AssertFileExists(old)
}

func TestCleanSkipsDirectories(t *testing.T) {
	f := testutil.NewFixture(t)

	dir := f.CreateDirWithAge("old_dir", 90*24*time.Hour)
	f.CreateFileWithAge("old_dir/inner.txt", []byte("inner"), 90*24*time.Hour)

	result, err := New(30).Clean(context.Background(), f.RootDir)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if len(result.DeletedFiles) != 0 {
		t.Errorf("DeletedFiles = %d, want 0", len(result.DeletedFiles))
	}
	f.AssertFileExists(dir)
}

func TestCleanContinuesAfterFailure(t *testing.T) {
	testutil.SkipIfRoot(t)
	f := testutil.NewFixture(t)

	// File trapped in a read-only directory cannot be removed; files in
	// a sibling path still must be.
	f.CreateFileWithAge("locked/trapped.txt", []byte("t"), 60*24*time.Hour)
	f.MakeReadOnly("locked")

	// Cleanup operates on one level; run it against the locked dir and
	// the root separately to exercise both outcomes.
	lockedResult, err := New(30).Clean(context.Background(), f.Path("locked"))
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(lockedResult.Errors) != 1 {
		t.Fatalf("Errors = %d, want 1", len(lockedResult.Errors))
	}
	if lockedResult.Errors[0].Reason != ErrorPermissionDenied {
		t.Errorf("Reason = %v, want %v", lockedResult.Errors[0].Reason, ErrorPermissionDenied)
	}

	stale := f.CreateFileWithAge("deletable.txt", []byte("d"), 60*24*time.Hour)
	rootResult, err := New(30).Clean(context.Background(), f.RootDir)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(rootResult.DeletedFiles) != 1 {
		t.Errorf("DeletedFiles = %d, want 1", len(rootResult.DeletedFiles))
	}
	f.AssertFileNotExists(stale)
}

func TestCleanCanceledContext(t *testing.T) {
	f := testutil.NewFixture(t)

	f.CreateFileWithAge("a.txt", []byte("a"), 60*24*time.Hour)
	f.CreateFileWithAge("b.txt", []byte("b"), 60*24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(30).Clean(ctx, f.RootDir)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if !result.Canceled {
		t.Error("result should be marked canceled")
	}
	if len(result.DeletedFiles) != 0 {
		t.Errorf("DeletedFiles = %d, want 0", len(result.DeletedFiles))
	}
}

func TestCleanPublishesProgress(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFileWithAge("stale.txt", []byte("s"), 40*24*time.Hour)

	reporter := progress.NewReporter()
	events := reporter.Subscribe()

	c := New(30)
	c.SetProgressReporter(reporter)
	if _, err := c.Clean(context.Background(), f.RootDir); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	reporter.Close()

	sawDeletion := false
	for ev := range events {
		if ev.Phase != progress.PhaseCleaning {
			t.Errorf("unexpected phase %q", ev.Phase)
		}
		if ev.Path != "" {
			sawDeletion = true
		}
	}
	if !sawDeletion {
		t.Error("expected a per-file cleanup event")
	}
}
