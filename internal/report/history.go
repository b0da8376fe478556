package report

import (
	"strconv"

	"filezen/internal/config"
	"filezen/pkg/utils"
)

// HistoryTable renders saved run records as a table, newest first
func HistoryTable(records []*config.RunRecord) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.RecordedAt.Format("2006-01-02 15:04"),
			rec.State,
			rec.Root,
			strconv.Itoa(rec.Result.FilesMoved),
			strconv.Itoa(rec.Result.FilesDeleted),
			utils.FormatBytes(rec.Result.BytesMoved),
			strconv.Itoa(len(rec.Result.Errors)),
		})
	}
	return renderTable(
		[]string{"When", "State", "Folder", "Moved", "Deleted", "Size", "Errors"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}
