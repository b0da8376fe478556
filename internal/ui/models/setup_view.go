package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filezen/internal/config"
	"filezen/internal/runner"
	"filezen/internal/ui/components"
	"filezen/internal/ui/styles"
)

// setup form fields, in navigation order
const (
	fieldRoot = iota
	fieldSortBySize
	fieldCleanup
	fieldAgeDays
	fieldCount
)

// SetupViewModel collects the folder and run options before a run
type SetupViewModel struct {
	rootInput textinput.Model
	daysInput textinput.Model

	sortBySize     bool
	cleanupEnabled bool

	focused   int
	statusBar *components.StatusBar
	errMsg    string
}

// NewSetupViewModel creates the setup form, pre-filled from config
func NewSetupViewModel(cfg *config.Config) *SetupViewModel {
	root := textinput.New()
	root.Placeholder = "/path/to/folder"
	root.SetValue(cfg.DefaultRoot)
	root.Focus()
	root.CharLimit = 512
	root.Width = 48

	days := textinput.New()
	days.SetValue(strconv.Itoa(cfg.Cleanup.AgeDays))
	days.CharLimit = 5
	days.Width = 6

	sb := components.NewStatusBar()
	sb.SetView("Setup")
	sb.SetShortcuts([][2]string{
		{"tab", "next"},
		{"space", "toggle"},
		{"enter", "start"},
		{"ctrl+c", "quit"},
	})

	return &SetupViewModel{
		rootInput:      root,
		daysInput:      days,
		sortBySize:     cfg.SortBySize,
		cleanupEnabled: cfg.Cleanup.Enabled,
		statusBar:      sb,
	}
}

// Init initializes the setup view
func (m *SetupViewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *SetupViewModel) Update(msg tea.Msg) (*SetupViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.nextField(1))
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.nextField(-1))
			return m, nil
		case " ":
			switch m.focused {
			case fieldSortBySize:
				m.sortBySize = !m.sortBySize
				return m, nil
			case fieldCleanup:
				m.cleanupEnabled = !m.cleanupEnabled
				return m, nil
			}
		case "enter":
			return m.startRun()
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case fieldRoot:
		m.rootInput, cmd = m.rootInput.Update(msg)
	case fieldAgeDays:
		m.daysInput, cmd = m.daysInput.Update(msg)
	}
	return m, cmd
}

// nextField steps through the form, skipping the age input while
// cleanup is off
func (m *SetupViewModel) nextField(delta int) int {
	field := (m.focused + delta + fieldCount) % fieldCount
	if field == fieldAgeDays && !m.cleanupEnabled {
		field = (field + delta + fieldCount) % fieldCount
	}
	return field
}

func (m *SetupViewModel) setFocus(field int) {
	m.focused = field
	m.rootInput.Blur()
	m.daysInput.Blur()
	switch field {
	case fieldRoot:
		m.rootInput.Focus()
	case fieldAgeDays:
		m.daysInput.Focus()
	}
}

// startRun validates the form and kicks off the run
func (m *SetupViewModel) startRun() (*SetupViewModel, tea.Cmd) {
	root := strings.TrimSpace(m.rootInput.Value())
	if err := runner.ValidateRoot(root); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	ageDays := 0
	if m.cleanupEnabled {
		n, err := strconv.Atoi(strings.TrimSpace(m.daysInput.Value()))
		if err != nil || n <= 0 {
			m.errMsg = "age must be a positive number of days"
			return m, nil
		}
		ageDays = n
	}

	m.errMsg = ""
	opts := runner.Options{
		SortBySize:     m.sortBySize,
		CleanupEnabled: m.cleanupEnabled,
		CleanupAgeDays: ageDays,
	}
	return m, func() tea.Msg {
		return StartRunMsg{Root: root, Options: opts}
	}
}

// View renders the setup form
func (m *SetupViewModel) View(width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("FileZen"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Organize a folder by file type"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldRoot, "Folder"))
	b.WriteString("\n  ")
	b.WriteString(m.rootInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldSortBySize, "Sort by size"))
	b.WriteString("  ")
	b.WriteString(checkbox(m.sortBySize))
	b.WriteString(styles.DimStyle.Render("  move smaller files first"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldCleanup, "Delete old files"))
	b.WriteString("  ")
	b.WriteString(checkbox(m.cleanupEnabled))
	b.WriteString("\n")

	if m.cleanupEnabled {
		b.WriteString(m.fieldLabel(fieldAgeDays, "  Older than"))
		b.WriteString("  ")
		b.WriteString(m.daysInput.View())
		b.WriteString(" days\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ %s", m.errMsg)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar.Render(width))

	return b.String()
}

func (m *SetupViewModel) fieldLabel(field int, label string) string {
	if m.focused == field {
		return styles.SelectedStyle.Render("> " + label)
	}
	return "  " + label
}

func checkbox(checked bool) string {
	if checked {
		return styles.CheckedBox()
	}
	return styles.UncheckedBox()
}
