// Package tui implements the interactive chat view: a scrolling
// transcript above a single-line input, one MCP server and one model
// per session.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aisummerdays/mcptour/internal/chat"
)

// Queries can involve two model calls plus a tool call; allow for slow
// local models.
const queryTimeout = 5 * time.Minute

// Meta describes the session for the title bar.
type Meta struct {
	Provider string
	Model    string
	Server   string
}

type entryKind int

const (
	entryYou entryKind = iota
	entryAssistant
	entryError
)

type entry struct {
	kind entryKind
	text string
}

type replyMsg struct{ text string }

type replyErrMsg struct{ err error }

type model struct {
	engine  *chat.Engine
	meta    Meta
	entries []entry

	vp      viewport.Model
	input   textinput.Model
	spin    spinner.Model
	waiting bool
	ready   bool
	width   int
	height  int
}

func newModel(engine *chat.Engine, meta Meta) model {
	ti := textinput.New()
	ti.Placeholder = "Ask something (quit to exit)"
	ti.Prompt = promptStyle.Render("> ")
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return model{
		engine: engine,
		meta:   meta,
		input:  ti,
		spin:   sp,
		width:  80,
		height: 24,
	}
}

// Run starts the chat TUI and blocks until the user quits.
func Run(engine *chat.Engine, meta Meta) error {
	p := tea.NewProgram(newModel(engine, meta), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title, blank, input, help.
		vpHeight := msg.Height - 4
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Send):
			return m.submit()
		}

	case replyMsg:
		m.waiting = false
		m.entries = append(m.entries, entry{kind: entryAssistant, text: msg.text})
		m.refreshTranscript()
		return m, nil

	case replyErrMsg:
		m.waiting = false
		m.entries = append(m.entries, entry{kind: entryError, text: msg.err.Error()})
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) submit() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}
	if query == "quit" || query == "exit" {
		return m, tea.Quit
	}

	m.entries = append(m.entries, entry{kind: entryYou, text: query})
	m.input.Reset()
	m.waiting = true
	m.refreshTranscript()

	return m, tea.Batch(processCmd(m.engine, query), m.spin.Tick)
}

func processCmd(engine *chat.Engine, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		reply, err := engine.Process(ctx, query)
		if err != nil {
			return replyErrMsg{err: err}
		}
		return replyMsg{text: reply}
	}
}

func (m *model) refreshTranscript() {
	if !m.ready {
		return
	}

	wrap := lipgloss.NewStyle().Width(m.vp.Width)
	var blocks []string
	for _, e := range m.entries {
		var label string
		switch e.kind {
		case entryYou:
			label = youLabelStyle.Render("You")
		case entryAssistant:
			label = assistantLabelStyle.Render(m.meta.Provider)
		case entryError:
			label = errorStyle.Render("Error")
		}
		body := entryTextStyle.Render(e.text)
		if e.kind == entryError {
			body = errorStyle.Render(e.text)
		}
		blocks = append(blocks, wrap.Render(label+"\n"+body))
	}

	m.vp.SetContent(strings.Join(blocks, "\n\n"))
	m.vp.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}

	title := titleStyle.Render("mcptour chat") + " " +
		titleDimStyle.Render(fmt.Sprintf("%s/%s → %s", m.meta.Provider, m.meta.Model, m.meta.Server))

	inputLine := m.input.View()
	if m.waiting {
		inputLine = m.spin.View() + " " + titleDimStyle.Render("thinking...")
	}

	help := strings.Join([]string{
		helpKeyStyle.Render("enter") + " " + helpDescStyle.Render("send"),
		helpKeyStyle.Render("esc") + " " + helpDescStyle.Render("quit"),
		helpKeyStyle.Render("↑/↓") + " " + helpDescStyle.Render("scroll"),
	}, helpSepStyle.Render("•"))

	return strings.Join([]string{title, m.vp.View(), inputLine, help}, "\n")
}
