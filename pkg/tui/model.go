// Package tui is the interactive terminal front end: a ticket key input,
// a ticket details pane, an analysis pane and a status bar. Analyses run
// on a worker goroutine and report progress over a channel.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helmcode/jira-ai/pkg/analyzer"
	"github.com/helmcode/jira-ai/pkg/formatter"
	"github.com/helmcode/jira-ai/pkg/model"
)

// Runner runs one analysis, sending stage updates on progress.
type Runner interface {
	Run(ctx context.Context, key string, opts analyzer.Options, progress chan<- analyzer.Stage) (*model.Report, error)
}

type focus int

const (
	focusInput focus = iota
	focusDetails
	focusAnalysis
)

// stageMsg carries one progress update from the worker along with the
// channel to keep listening on.
type stageMsg struct {
	stage    analyzer.Stage
	progress <-chan analyzer.Stage
}

// doneMsg is sent once the worker returns.
type doneMsg struct {
	key    string
	report *model.Report
	err    error
}

// browserMsg reports the result of opening the ticket page.
type browserMsg struct {
	url string
	err error
}

// Options configure a Model.
type Options struct {
	Runner    Runner
	Analysis  analyzer.Options
	BrowseURL func(key string) string
	OpenURL   func(url string) error
}

// Model is the bubbletea model for the analyzer TUI.
type Model struct {
	opts Options
	keys KeyMap

	input    textinput.Model
	details  viewport.Model
	analysis viewport.Model
	spinner  spinner.Model

	focus   focus
	running bool
	status  string
	label   string
	lastKey string
	cancel  context.CancelFunc

	width  int
	height int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	activeStyle = paneStyle.BorderForeground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// NewModel creates a Model with an empty input focused.
func NewModel(opts Options) Model {
	input := textinput.New()
	input.Placeholder = "PROJ-123"
	input.Prompt = "JIRA Bug ID: "
	input.CharLimit = 64
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		opts:    opts,
		keys:    DefaultKeyMap,
		input:   input,
		spinner: spin,
		status:  "Ready",
		label:   "Analysis",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Browse):
			return m, m.browse()
		case key.Matches(msg, m.keys.FocusToggle):
			m.toggleFocus()
			return m, nil
		case key.Matches(msg, m.keys.Analyze) && m.focus == focusInput:
			return m.start()
		}
		return m.forwardKey(msg)

	case stageMsg:
		// The run already finished; its result owns the status line.
		if !m.running {
			return m, nil
		}
		m.status = msg.stage.Message
		if msg.stage.Details != "" {
			m.details.SetContent(msg.stage.Details)
			m.details.GotoTop()
		}
		return m, waitForStage(msg.progress)

	case doneMsg:
		return m.finish(msg), nil

	case browserMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Could not open browser: %v", msg.err))
		} else {
			m.status = fmt.Sprintf("Opened %s", msg.url)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// start launches an analysis for the key in the input. The worker and the
// progress listener run as separate commands sharing one channel.
func (m Model) start() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	key := strings.ToUpper(strings.TrimSpace(m.input.Value()))
	if key == "" {
		m.status = errorStyle.Render("Please enter a JIRA Bug ID")
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	progress := make(chan analyzer.Stage, 8)

	m.running = true
	m.cancel = cancel
	m.lastKey = key
	m.label = "Analysis"
	m.status = fmt.Sprintf("Fetching JIRA bug %s...", key)
	m.details.SetContent("")
	m.analysis.SetContent("")

	return m, tea.Batch(
		runAnalysis(ctx, m.opts.Runner, key, m.opts.Analysis, progress),
		waitForStage(progress),
		m.spinner.Tick,
	)
}

// runAnalysis runs the pipeline on the command goroutine and closes the
// progress channel when it returns.
func runAnalysis(ctx context.Context, runner Runner, key string, opts analyzer.Options, progress chan analyzer.Stage) tea.Cmd {
	return func() tea.Msg {
		defer close(progress)
		report, err := runner.Run(ctx, key, opts, progress)
		return doneMsg{key: key, report: report, err: err}
	}
}

// waitForStage blocks until the next progress message. The stageMsg
// handler re-arms it until the channel is closed.
func waitForStage(progress <-chan analyzer.Stage) tea.Cmd {
	return func() tea.Msg {
		stage, ok := <-progress
		if !ok {
			return nil
		}
		return stageMsg{stage: stage, progress: progress}
	}
}

func (m Model) finish(msg doneMsg) Model {
	m.running = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.err != nil {
		m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		m.details.SetContent("")
		m.analysis.SetContent("")
		return m
	}

	report := msg.report
	m.details.SetContent(report.Details)
	m.details.GotoTop()
	if report.Analysis != nil {
		m.label = report.Analysis.Label
		text := report.Analysis.Text
		if report.Analysis.Source == model.SourceRemote {
			text = formatter.RenderMarkdown(text)
		}
		m.analysis.SetContent(text)
		m.analysis.GotoTop()
	}
	m.status = fmt.Sprintf("✓ Analysis completed for %s", msg.key)
	return m
}

func (m Model) browse() tea.Cmd {
	key := strings.ToUpper(strings.TrimSpace(m.input.Value()))
	if key == "" {
		key = m.lastKey
	}
	if key == "" || m.opts.BrowseURL == nil || m.opts.OpenURL == nil {
		return nil
	}
	url := m.opts.BrowseURL(key)
	open := m.opts.OpenURL
	return func() tea.Msg {
		return browserMsg{url: url, err: open(url)}
	}
}

func (m *Model) toggleFocus() {
	m.focus = (m.focus + 1) % 3
	if m.focus == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m Model) forwardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusDetails:
		m.details, cmd = m.details.Update(msg)
	case focusAnalysis:
		m.analysis, cmd = m.analysis.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// layout splits the space below the input between the two panes.
func (m *Model) layout() {
	// input line, two pane titles, two borders each, status line
	body := m.height - 1 - 2 - 4 - 1
	if body < 2 {
		body = 2
	}
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	m.input.Width = width - len(m.input.Prompt)
	m.details.Width = width
	m.details.Height = body / 2
	m.analysis.Width = width
	m.analysis.Height = body - body/2
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	detailsPane, analysisPane := paneStyle, paneStyle
	switch m.focus {
	case focusDetails:
		detailsPane = activeStyle
	case focusAnalysis:
		analysisPane = activeStyle
	}

	status := m.status
	if m.running {
		status = m.spinner.View() + " " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.input.View(),
		titleStyle.Render("Bug Details"),
		detailsPane.Render(m.details.View()),
		titleStyle.Render(m.label),
		analysisPane.Render(m.analysis.View()),
		statusStyle.Render(status),
	)
}
