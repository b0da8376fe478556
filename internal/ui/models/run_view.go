package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"filezen/internal/progress"
	"filezen/internal/runner"
	"filezen/internal/ui/components"
	"filezen/internal/ui/styles"
)

const maxLogLines = 12

// RunViewModel shows live progress while a run executes
type RunViewModel struct {
	root string
	opts runner.Options

	reporter *progress.Reporter
	events   <-chan progress.Event
	cancel   context.CancelFunc

	spinner   spinner.Model
	statusBar *components.StatusBar
	startTime time.Time

	phase     progress.Phase
	processed int
	bytes     int64
	log       []string
	canceling bool
}

// progressEventMsg carries one progress event into the update loop
type progressEventMsg struct {
	event progress.Event
	ok    bool
}

// NewRunViewModel creates the run view and wires up the progress feed
func NewRunViewModel(root string, opts runner.Options) *RunViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	reporter := progress.NewReporter()

	sb := components.NewStatusBar()
	sb.SetView("Running")
	sb.SetShortcuts([][2]string{
		{"ctrl+c", "cancel"},
	})

	return &RunViewModel{
		root:      root,
		opts:      opts,
		reporter:  reporter,
		events:    reporter.Subscribe(),
		spinner:   s,
		statusBar: sb,
		startTime: time.Now(),
	}
}

// Init starts the run and the event pump
func (m *RunViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.performRun(),
		m.waitForEvent(),
	)
}

// performRun executes the pipeline in the background. The returned
// command blocks until the run finishes, which is fine: bubbletea
// runs commands on their own goroutines.
func (m *RunViewModel) performRun() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	r := runner.New(m.root, m.opts)
	r.SetProgressReporter(m.reporter)

	return func() tea.Msg {
		result, err := r.Run(ctx)
		m.reporter.Close()
		return RunCompleteMsg{Root: m.root, Result: result, Err: err}
	}
}

// waitForEvent reads the next progress event off the feed
func (m *RunViewModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		return progressEventMsg{event: ev, ok: ok}
	}
}

// Update handles messages
func (m *RunViewModel) Update(msg tea.Msg) (*RunViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.cancel != nil && !m.canceling {
				m.canceling = true
				m.cancel()
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressEventMsg:
		if !msg.ok {
			// feed closed, run is finishing
			return m, nil
		}
		m.applyEvent(msg.event)
		return m, m.waitForEvent()
	}

	return m, nil
}

func (m *RunViewModel) applyEvent(ev progress.Event) {
	if ev.Phase != "" {
		m.phase = ev.Phase
	}
	if ev.Processed > 0 {
		m.processed = ev.Processed
	}
	if ev.Bytes > 0 {
		m.bytes = ev.Bytes
	}
	if ev.Message != "" {
		m.log = append(m.log, ev.Message)
		if len(m.log) > maxLogLines {
			m.log = m.log[len(m.log)-maxLogLines:]
		}
	}
}

// View renders the run view
func (m *RunViewModel) View(width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Organizing " + m.root))
	b.WriteString("\n\n")

	label := m.phaseLabel()
	if m.canceling {
		label = "Canceling..."
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
	b.WriteString("\n\n")

	for _, line := range m.log {
		b.WriteString("  ")
		b.WriteString(styles.DimStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	m.statusBar.SetProgress(m.processed, m.processed, m.bytes)
	b.WriteString(m.statusBar.Render(width))

	return b.String()
}

func (m *RunViewModel) phaseLabel() string {
	switch m.phase {
	case progress.PhaseCleaning:
		return "Deleting old files..."
	case progress.PhaseScanning:
		return "Scanning..."
	case progress.PhaseOrganizing:
		return "Moving files..."
	default:
		return "Starting..."
	}
}
