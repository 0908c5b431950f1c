package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PipelineUI reports the progress of a sequence of steps.
// Steps are reported strictly in order; End is called once per Begin.
type PipelineUI interface {
	Begin(title string, steps []string)
	StepStarted(idx int)
	StepFinished(idx int, err error)
	End(err error)
}

// NewPipelineUI returns a spinner view on a terminal and plain log lines otherwise
func NewPipelineUI(splog *Splog, out io.Writer, terminal bool) PipelineUI {
	if terminal {
		return &ttyPipelineUI{splog: splog, out: out}
	}
	return NewPlainPipelineUI(splog)
}

// plainPipelineUI writes step progress as debug lines
type plainPipelineUI struct {
	splog *Splog
	steps []string
}

// NewPlainPipelineUI creates a PipelineUI that only writes to the log
func NewPlainPipelineUI(splog *Splog) PipelineUI {
	return &plainPipelineUI{splog: splog}
}

func (u *plainPipelineUI) Begin(title string, steps []string) {
	u.steps = steps
	u.splog.Debug("%s: %s", title, strings.Join(steps, " → "))
}

func (u *plainPipelineUI) StepStarted(idx int) {
	u.splog.Debug("  ⋯ %s", u.steps[idx])
}

func (u *plainPipelineUI) StepFinished(idx int, err error) {
	if err != nil {
		u.splog.Debug("  ✗ %s: %v", u.steps[idx], err)
		return
	}
	u.splog.Debug("  ✓ %s", u.steps[idx])
}

func (u *plainPipelineUI) End(_ error) {}

type stepStatus int

const (
	stepPending stepStatus = iota
	stepRunning
	stepDone
	stepFailed
)

type stepStartedMsg struct{ idx int }

type stepFinishedMsg struct {
	idx int
	err error
}

type pipelineEndMsg struct{}

type pipelineStyles struct {
	spinner lipgloss.Style
	done    lipgloss.Style
	failed  lipgloss.Style
	dim     lipgloss.Style
	title   lipgloss.Style
}

// pipelineModel is the bubbletea model for step progress
type pipelineModel struct {
	title   string
	steps   []string
	status  []stepStatus
	errs    []error
	spinner spinner.Model
	styles  pipelineStyles
	done    bool
}

func newPipelineModel(title string, steps []string) pipelineModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)

	return pipelineModel{
		title:   title,
		steps:   steps,
		status:  make([]stepStatus, len(steps)),
		errs:    make([]error, len(steps)),
		spinner: s,
		styles: pipelineStyles{
			spinner: lipgloss.NewStyle().Foreground(accentColor),
			done:    lipgloss.NewStyle().Foreground(successColor),
			failed:  lipgloss.NewStyle().Foreground(failureColor),
			dim:     lipgloss.NewStyle().Foreground(dimColor),
			title:   lipgloss.NewStyle().Bold(true),
		},
	}
}

func (m pipelineModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m pipelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepStartedMsg:
		if msg.idx < len(m.status) {
			m.status[msg.idx] = stepRunning
		}

	case stepFinishedMsg:
		if msg.idx < len(m.status) {
			if msg.err != nil {
				m.status[msg.idx] = stepFailed
				m.errs[msg.idx] = msg.err
			} else {
				m.status[msg.idx] = stepDone
			}
		}

	case pipelineEndMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m pipelineModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.title))
	b.WriteString("\n")

	for i, name := range m.steps {
		var icon, label string
		switch m.status[i] {
		case stepPending:
			icon = m.styles.dim.Render("○")
			label = m.styles.dim.Render(name)
		case stepRunning:
			icon = m.spinner.View()
			label = m.styles.spinner.Render(name + "...")
		case stepDone:
			icon = m.styles.done.Render("✓")
			label = name
		case stepFailed:
			icon = m.styles.failed.Render("✗")
			label = m.styles.failed.Render(fmt.Sprintf("%s: %v", name, m.errs[i]))
		}
		fmt.Fprintf(&b, "  %s %s\n", icon, label)
	}

	return b.String()
}

// ttyPipelineUI renders a pipelineModel in a background bubbletea program.
// It never reads the keyboard so prompts asked afterwards keep working.
type ttyPipelineUI struct {
	splog   *Splog
	out     io.Writer
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

func (u *ttyPipelineUI) Begin(title string, steps []string) {
	u.splog.Debug("%s: %s", title, strings.Join(steps, " → "))
	u.program = tea.NewProgram(newPipelineModel(title, steps), tea.WithInput(nil), tea.WithOutput(u.out))
	u.done = make(chan struct{})
	u.once = sync.Once{}
	u.splog.SetQuiet(true)

	go func() {
		defer close(u.done)
		if _, err := u.program.Run(); err != nil {
			u.splog.Debug("step view stopped: %v", err)
		}
	}()
}

func (u *ttyPipelineUI) StepStarted(idx int) {
	u.program.Send(stepStartedMsg{idx: idx})
}

func (u *ttyPipelineUI) StepFinished(idx int, err error) {
	u.program.Send(stepFinishedMsg{idx: idx, err: err})
	if err != nil {
		u.splog.Debug("step %d failed: %v", idx, err)
	}
}

func (u *ttyPipelineUI) End(_ error) {
	u.once.Do(func() {
		u.program.Send(pipelineEndMsg{})
		<-u.done
		u.splog.SetQuiet(false)
	})
}
