package models

import (
	tea "github.com/charmbracelet/bubbletea"

	"filezen/internal/config"
	"filezen/internal/runner"
)

// ViewState represents the current view in the app
type ViewState int

const (
	ViewSetup ViewState = iota
	ViewRunning
	ViewSummary
)

// AppModel is the root model for the interactive TUI
type AppModel struct {
	state ViewState

	config *config.Config

	setupView   *SetupViewModel
	runView     *RunViewModel
	summaryView *SummaryViewModel

	width  int
	height int
	err    error
}

// NewAppModel creates a new app model
func NewAppModel(cfg *config.Config) *AppModel {
	return &AppModel{
		state:  ViewSetup,
		config: cfg,
	}
}

// Init initializes the model
func (m *AppModel) Init() tea.Cmd {
	m.setupView = NewSetupViewModel(m.config)
	return m.setupView.Init()
}

// Update handles messages
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.state != ViewRunning {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StartRunMsg:
		m.runView = NewRunViewModel(msg.Root, msg.Options)
		m.state = ViewRunning
		return m, m.runView.Init()

	case RunCompleteMsg:
		m.summaryView = NewSummaryViewModel(msg.Root, msg.Result, msg.Err)
		m.state = ViewSummary
		return m, nil
	}

	// Delegate to current view
	return m.delegateUpdate(msg)
}

func (m *AppModel) delegateUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case ViewSetup:
		if m.setupView != nil {
			m.setupView, cmd = m.setupView.Update(msg)
		}
	case ViewRunning:
		if m.runView != nil {
			m.runView, cmd = m.runView.Update(msg)
		}
	case ViewSummary:
		if m.summaryView != nil {
			m.summaryView, cmd = m.summaryView.Update(msg)
		}
	}

	return m, cmd
}

// View renders the current view
func (m *AppModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit."
	}

	switch m.state {
	case ViewSetup:
		if m.setupView != nil {
			return m.setupView.View(m.width)
		}
	case ViewRunning:
		if m.runView != nil {
			return m.runView.View(m.width)
		}
	case ViewSummary:
		if m.summaryView != nil {
			return m.summaryView.View(m.width)
		}
	}

	return "Loading..."
}

// Custom messages
type StartRunMsg struct {
	Root    string
	Options runner.Options
}

type RunCompleteMsg struct {
	Root   string
	Result *runner.OperationResult
	Err    error
}
