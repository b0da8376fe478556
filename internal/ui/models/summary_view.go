package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"filezen/internal/runner"
	"filezen/internal/ui/components"
	"filezen/internal/ui/styles"
	"filezen/pkg/utils"
)

// SummaryViewModel shows the accounting of a finished run
type SummaryViewModel struct {
	root      string
	result    *runner.OperationResult
	err       error
	statusBar *components.StatusBar
}

// NewSummaryViewModel creates the summary view
func NewSummaryViewModel(root string, result *runner.OperationResult, err error) *SummaryViewModel {
	sb := components.NewStatusBar()
	sb.SetView("Summary")
	sb.SetShortcuts([][2]string{
		{"q", "quit"},
	})

	return &SummaryViewModel{
		root:      root,
		result:    result,
		err:       err,
		statusBar: sb,
	}
}

// Update handles messages
func (m *SummaryViewModel) Update(msg tea.Msg) (*SummaryViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the summary
func (m *SummaryViewModel) View(width int) string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("✗ Run failed"))
		b.WriteString("\n\n")
		b.WriteString(m.err.Error())
		b.WriteString("\n\n")
		b.WriteString(m.statusBar.Render(width))
		return b.String()
	}

	if m.result.Canceled {
		b.WriteString(styles.SubtitleStyle.Render("Run canceled"))
	} else {
		b.WriteString(styles.SuccessStyle.Render("✓ Done"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Moved:   %d files (%s)\n",
		m.result.FilesMoved, utils.FormatBytes(m.result.BytesMoved)))
	if m.result.FilesDeleted > 0 {
		b.WriteString(fmt.Sprintf("Deleted: %d files (%s)\n",
			m.result.FilesDeleted, utils.FormatBytes(m.result.BytesDeleted)))
	}

	if len(m.result.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.BoldStyle.Render("Categories"))
		b.WriteString("\n")
		for _, c := range m.result.Categories {
			b.WriteString(fmt.Sprintf("  %s %d files, %s\n",
				styles.CategoryStyle.Render(fmt.Sprintf("%-12s", c.Label)),
				c.Count, utils.FormatBytes(c.Size)))
		}
	}

	if m.result.HasErrors() {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("%d files could not be processed", len(m.result.Errors))))
		b.WriteString("\n")
		for _, e := range m.result.Errors {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  %s\n", e.Error())))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar.Render(width))

	return b.String()
}
