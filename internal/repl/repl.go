// Package repl is the interactive line-oriented front end for a running
// solver.Solver, offering the exit/help/shrink/print/stop command
// vocabulary.
//
// It follows a bubbletea Model/Update/View split (model state and
// message types held together, Update dispatching on tea.Msg) adapted
// from a polled-API-data dashboard flow to a typed-command flow backed
// by events.Bus instead of HTTP polling.
package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cumbiambero/genforge/internal/events"
	"github.com/cumbiambero/genforge/internal/solver"
)

var helpText = strings.Join([]string{
	"commands:",
	"  help    show this text",
	"  print   render the current report",
	"  shrink  prune the pool to its better half",
	"  stop    request solver termination",
	"  exit    quit the REPL and stop the solver",
}, "\n")

type eventMsg *events.Event

// Model is the REPL's bubbletea state: a scrollback viewport plus a
// single-line command input, mirroring the viewport+table split the
// teacher's dashboard model uses for its own two regions.
type Model struct {
	solver *solver.Solver
	sub    events.Subscription
	events chan *events.Event

	viewport viewport.Model
	input    textinput.Model
	lines    []string

	width, height int
	ready         bool
	quitting      bool
}

// New wires a Model to an already-constructed Solver and subscribes to
// its bus for live progress lines (TypeNewBest only).
func New(s *solver.Solver, bus *events.Bus) Model {
	ti := textinput.New()
	ti.Placeholder = "help | print | shrink | stop | exit"
	ti.Focus()
	ti.CharLimit = 128

	m := Model{
		solver: s,
		input:  ti,
		lines:  []string{"genforge REPL — type 'help' for commands"},
		events: make(chan *events.Event, 32),
	}

	if bus != nil {
		handler := func(e *events.Event) {
			select {
			case m.events <- e:
			default:
			}
		}
		m.sub = bus.Subscribe(events.TypeNewBest, handler)
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(ch chan *events.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 1
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(m.width, m.height-headerHeight-footerHeight)
			m.viewport.SetContent(strings.Join(m.lines, "\n"))
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = m.height - headerHeight - footerHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			return m.runCommand(line)
		}

	case eventMsg:
		e := (*events.Event)(msg)
		m.appendLine(fmt.Sprintf("[%s] %v", e.Type, e.Data))
		return m, waitForEvent(m.events)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if m.ready {
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
	}
}

// runCommand dispatches one REPL command line. Unknown input is echoed
// back with a hint rather than treated as an error.
func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	switch line {
	case "":
		return m, nil
	case "exit", "quit":
		m.quitting = true
		return m, tea.Quit
	case "help":
		m.appendLine(helpText)
	case "shrink":
		m.solver.Shrink()
		m.appendLine("pool shrunk to its better half")
	case "stop":
		m.solver.Stop()
		m.appendLine("stop requested")
	case "print":
		m.appendLine(m.solver.Report(solver.DefaultReportConfig()))
	default:
		m.appendLine(fmt.Sprintf("unknown command %q (try 'help')", line))
	}
	return m, nil
}

var promptStyle = lipgloss.NewStyle().Bold(true)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "initializing...\n"
	}
	return fmt.Sprintf("%s\n%s\n%s %s",
		promptStyle.Render(fmt.Sprintf("genforge — run %s — %s", m.solver.RunID(), m.solver.State())),
		m.viewport.View(),
		promptStyle.Render(">"),
		m.input.View(),
	)
}
