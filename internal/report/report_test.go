package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"filezen/internal/config"
	"filezen/internal/runner"
	"filezen/internal/scanner"
	"filezen/internal/testutil"
)

func scanFixture(t *testing.T) *scanner.ScanResult {
	t.Helper()
	f := testutil.NewFixture(t)
	f.CreateFile("a.pdf", []byte("1234"))
	f.CreateFile("b.pdf", []byte("5678"))
	f.CreateFile("notes.txt", []byte("xy"))

	result, err := scanner.New().Scan(context.Background(), f.RootDir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	return result
}

func runResult() *runner.OperationResult {
	now := time.Now()
	return &runner.OperationResult{
		State:          runner.StateDone,
		FilesProcessed: 3,
		FilesMoved:     3,
		FilesDeleted:   1,
		BytesMoved:     10,
		BytesDeleted:   2048,
		Categories: []runner.CategorySummary{
			{Label: "PDF", Count: 2, Size: 8},
			{Label: "TXT", Count: 1, Size: 2},
		},
		StartedAt:  now.Add(-time.Second),
		FinishedAt: now,
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"summary", "table", "json", "yaml"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestScanReportSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatSummary)

	if err := r.ScanReport(scanFixture(t)); err != nil {
		t.Fatalf("ScanReport() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "3 files in 2 categories") {
		t.Errorf("summary missing totals: %q", out)
	}
	if !strings.Contains(out, "PDF") || !strings.Contains(out, "TXT") {
		t.Errorf("summary missing categories: %q", out)
	}
}

func TestScanReportTable(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatTable)

	if err := r.ScanReport(scanFixture(t)); err != nil {
		t.Fatalf("ScanReport() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Category", "Files", "Size", "PDF", "TXT"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestScanReportJSON(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatJSON)

	if err := r.ScanReport(scanFixture(t)); err != nil {
		t.Fatalf("ScanReport() error = %v", err)
	}

	var decoded scanner.ScanResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", decoded.TotalCount)
	}
}

func TestRunReportSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatSummary)

	if err := r.RunReport(runResult()); err != nil {
		t.Fatalf("RunReport() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Moved:     3 files") {
		t.Errorf("summary missing move count: %q", out)
	}
	if !strings.Contains(out, "2.00 KB") {
		t.Errorf("summary missing formatted deleted size: %q", out)
	}
}

func TestRunReportSummaryErrors(t *testing.T) {
	result := runResult()
	result.Errors = append(result.Errors, &runner.ItemError{
		Path:   "/x/locked.txt",
		Stage:  "organize",
		Reason: "permission denied",
	})

	var buf bytes.Buffer
	if err := New(&buf, FormatSummary).RunReport(result); err != nil {
		t.Fatalf("RunReport() error = %v", err)
	}
	if !strings.Contains(buf.String(), "locked.txt") {
		t.Errorf("summary missing error detail: %q", buf.String())
	}
}

func TestHistoryTable(t *testing.T) {
	records := []*config.RunRecord{
		{
			Root:       "/home/user/Downloads",
			State:      "done",
			Result:     runResult(),
			RecordedAt: time.Now(),
		},
	}

	out := HistoryTable(records)
	for _, want := range []string{"When", "State", "/home/user/Downloads", "done"} {
		if !strings.Contains(out, want) {
			t.Errorf("history table missing %q:\n%s", want, out)
		}
	}
}

func TestRunReportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).RunReport(runResult()); err != nil {
		t.Fatalf("RunReport() error = %v", err)
	}
	if !strings.Contains(buf.String(), "files_moved: 3") {
		t.Errorf("yaml output missing field: %q", buf.String())
	}
}
