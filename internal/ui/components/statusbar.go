package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filezen/internal/ui/styles"
	"filezen/pkg/utils"
)

// StatusBar displays run context and shortcuts at the bottom of a view
type StatusBar struct {
	viewName  string
	processed int
	total     int
	size      int64
	shortcuts [][2]string // key, description pairs in display order
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetView sets the current view name
func (s *StatusBar) SetView(viewName string) {
	s.viewName = viewName
}

// SetProgress sets the processed count, total, and moved size
func (s *StatusBar) SetProgress(processed, total int, size int64) {
	s.processed = processed
	s.total = total
	s.size = size
}

// SetShortcuts sets the shortcuts to display, in order
func (s *StatusBar) SetShortcuts(shortcuts [][2]string) {
	s.shortcuts = shortcuts
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = 80
	}

	var parts []string
	if s.viewName != "" {
		parts = append(parts, styles.BoldStyle.Render(s.viewName))
	}
	if s.total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d files", s.processed, s.total))
	}
	if s.size > 0 {
		parts = append(parts, styles.FileSizeStyle.Render(utils.FormatBytes(s.size)))
	}
	leftSide := strings.Join(parts, " • ")

	var shortcutParts []string
	for _, sc := range s.shortcuts {
		shortcutParts = append(shortcutParts, fmt.Sprintf("%s:%s",
			styles.DimStyle.Render(sc[0]), sc[1]))
	}
	rightSide := strings.Join(shortcutParts, " ")

	leftLen := lipgloss.Width(leftSide)
	rightLen := lipgloss.Width(rightSide)
	spacing := width - leftLen - rightLen - 2

	if spacing < 1 {
		maxRightLen := width - leftLen - 5
		if maxRightLen > 3 && rightLen > maxRightLen {
			rightSide = rightSide[:maxRightLen-3] + "..."
		}
		spacing = 1
	}

	statusLine := leftSide + strings.Repeat(" ", spacing) + rightSide

	return styles.StatusBarStyle.Width(width).Render(statusLine)
}

// RenderSimple renders a status bar with just a message
func RenderSimple(message string, width int) string {
	if width <= 0 {
		width = 80
	}
	return styles.StatusBarStyle.Width(width).Render(message)
}
