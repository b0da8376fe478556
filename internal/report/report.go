// Package report renders scan and run results for the command line.
// Four formats are supported: a short summary, a table, JSON and
// YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"filezen/internal/runner"
	"filezen/internal/scanner"
	"filezen/pkg/utils"
)

// Format selects the output rendering
type Format string

const (
	FormatSummary Format = "summary"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// ParseFormat validates a format flag value
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSummary, FormatTable, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want summary, table, json or yaml)", s)
	}
}

// Reporter writes formatted results to a writer
type Reporter struct {
	w      io.Writer
	format Format
}

// New creates a reporter
func New(w io.Writer, format Format) *Reporter {
	return &Reporter{w: w, format: format}
}

// ScanReport renders the category breakdown of a scan
func (r *Reporter) ScanReport(result *scanner.ScanResult) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(result)
	case FormatYAML:
		return r.writeYAML(result)
	case FormatTable:
		return r.scanTable(result)
	default:
		return r.scanSummary(result)
	}
}

// RunReport renders the accounting of a finished run
func (r *Reporter) RunReport(result *runner.OperationResult) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(result)
	case FormatYAML:
		return r.writeYAML(result)
	case FormatTable:
		return r.runTable(result)
	default:
		return r.runSummary(result)
	}
}

func (r *Reporter) scanSummary(result *scanner.ScanResult) error {
	fmt.Fprintf(r.w, "%d files in %d categories, %s total\n",
		result.TotalCount, len(result.Buckets), utils.FormatBytes(result.TotalSize))
	for _, label := range sortedLabels(result) {
		bucket := result.Buckets[label]
		var size int64
		for _, e := range bucket {
			size += e.Size
		}
		fmt.Fprintf(r.w, "  %-12s %4d files  %s\n", label, len(bucket), utils.FormatBytes(size))
	}
	return nil
}

func (r *Reporter) scanTable(result *scanner.ScanResult) error {
	rows := make([][]string, 0, len(result.Buckets))
	for _, label := range sortedLabels(result) {
		bucket := result.Buckets[label]
		var size int64
		for _, e := range bucket {
			size += e.Size
		}
		rows = append(rows, []string{label, strconv.Itoa(len(bucket)), utils.FormatBytes(size)})
	}
	out := renderTable(
		[]string{"Category", "Files", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
	_, err := fmt.Fprintln(r.w, out)
	return err
}

func (r *Reporter) runSummary(result *runner.OperationResult) error {
	fmt.Fprintf(r.w, "State:     %s\n", result.State)
	fmt.Fprintf(r.w, "Processed: %d files\n", result.FilesProcessed)
	fmt.Fprintf(r.w, "Moved:     %d files (%s)\n", result.FilesMoved, utils.FormatBytes(result.BytesMoved))
	if result.FilesDeleted > 0 || result.BytesDeleted > 0 {
		fmt.Fprintf(r.w, "Deleted:   %d files (%s)\n", result.FilesDeleted, utils.FormatBytes(result.BytesDeleted))
	}
	fmt.Fprintf(r.w, "Duration:  %s\n", result.Duration().Round(time.Millisecond))
	if result.Canceled {
		fmt.Fprintln(r.w, "Run was canceled; results are partial")
	}
	if result.HasErrors() {
		fmt.Fprintf(r.w, "Errors:    %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(r.w, "  %s\n", e.Error())
		}
	}
	return nil
}

func (r *Reporter) runTable(result *runner.OperationResult) error {
	rows := make([][]string, 0, len(result.Categories))
	for _, c := range result.Categories {
		rows = append(rows, []string{c.Label, strconv.Itoa(c.Count), utils.FormatBytes(c.Size)})
	}
	out := renderTable(
		[]string{"Category", "Files", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
	if _, err := fmt.Fprintln(r.w, out); err != nil {
		return err
	}
	return r.runSummary(result)
}

func (r *Reporter) writeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Reporter) writeYAML(v any) error {
	enc := yaml.NewEncoder(r.w)
	defer enc.Close()
	return enc.Encode(v)
}

// sortedLabels returns bucket labels alphabetically so output is
// stable regardless of scan order
func sortedLabels(result *scanner.ScanResult) []string {
	labels := make([]string, 0, len(result.Buckets))
	for label := range result.Buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
