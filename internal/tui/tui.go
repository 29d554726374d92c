// Package tui draws a live view of a streamed form submission.
package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/ui"
)

// ErrCancelled is returned when the user quits before the result arrives.
var ErrCancelled = errors.New("tui: cancelled")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	messageStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6b7280"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type updateMsg app.StreamUpdate

type closedMsg struct{}

// Model follows a submission stream until its outcome arrives.
type Model struct {
	title   string
	updates <-chan app.StreamUpdate
	spinner spinner.Model
	steps   []ui.Step
	message string
	outcome *app.Outcome
	err     error
	done    bool
}

// New builds a model reading from updates.
func New(title string, updates <-chan app.StreamUpdate) Model {
	if title == "" {
		title = "Processing..."
	}
	return Model{
		title:   title,
		updates: updates,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(activeStyle)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

func waitForUpdate(updates <-chan app.StreamUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return updateMsg(update)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.err = ErrCancelled
			m.done = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case updateMsg:
		m.steps = msg.Steps.Steps
		if msg.Event.Message != "" {
			m.message = msg.Event.Message
		}
		if msg.Outcome != nil {
			m.outcome = msg.Outcome
			if msg.Outcome.Steps != nil {
				m.steps = msg.Outcome.Steps.Steps
			}
			m.done = true
			return m, tea.Quit
		}
		return m, waitForUpdate(m.updates)
	case closedMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for _, step := range m.steps {
		switch step.Status {
		case ui.StepComplete:
			b.WriteString(completeStyle.Render("✓ " + step.Label))
		case ui.StepActive:
			b.WriteString(m.spinner.View() + activeStyle.Render(step.Label))
		default:
			b.WriteString(pendingStyle.Render("○ " + step.Label))
		}
		b.WriteString("\n")
	}
	if m.message != "" && !m.done {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	if !m.done {
		b.WriteString(helpStyle.Render("q to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

// Outcome is the final outcome, nil until the stream completes.
func (m Model) Outcome() *app.Outcome { return m.outcome }

// Err reports why the view stopped early.
func (m Model) Err() error { return m.err }

var startProgram = func(ctx context.Context, model tea.Model, out io.Writer) (tea.Model, error) {
	return tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(out)).Run()
}

// Run shows the live view until the stream delivers its outcome.
func Run(ctx context.Context, title string, updates <-chan app.StreamUpdate, out io.Writer) (*app.Outcome, error) {
	final, err := startProgram(ctx, New(title, updates), out)
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, errors.New("tui: unexpected model")
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome == nil {
		return nil, errors.New("tui: stream closed without a result")
	}
	return m.outcome, nil
}
