package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"filezen/internal/runner"
)

// RunRecord is one finished run persisted to the history directory
type RunRecord struct {
	ID         string                  `json:"id"`
	Root       string                  `json:"root"`
	SortBySize bool                    `json:"sort_by_size"`
	Cleanup    CleanupConfig           `json:"cleanup"`
	Result     *runner.OperationResult `json:"result"`
	State      string                  `json:"state"`
	RecordedAt time.Time               `json:"recorded_at"`
}

// NewRunRecord builds a record for a finished run
func NewRunRecord(root string, opts runner.Options, result *runner.OperationResult) *RunRecord {
	return &RunRecord{
		ID:         uuid.NewString(),
		Root:       root,
		SortBySize: opts.SortBySize,
		Cleanup: CleanupConfig{
			Enabled: opts.CleanupEnabled,
			AgeDays: opts.CleanupAgeDays,
		},
		Result:     result,
		State:      result.State.String(),
		RecordedAt: time.Now(),
	}
}

// GetHistoryDir returns the directory run records are written to
func GetHistoryDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "filezen", "runs"), nil
}

// SaveRunRecord writes a record as a JSON file in the history
// directory. The filename sorts chronologically.
func SaveRunRecord(dir string, record *RunRecord) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", record.RecordedAt.UTC().Format("20060102T150405"), record.ID)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}

	return nil
}

// ListRunRecords loads all records from the history directory, newest
// first. A missing directory is an empty history, not an error.
func ListRunRecords(dir string) ([]*RunRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var records []*RunRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var record RunRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.After(records[j].RecordedAt)
	})

	return records, nil
}
