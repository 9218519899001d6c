// Package tui provides a Bubble Tea terminal UI for the Lumina engine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/lumina/cli"
	"github.com/nathoo/lumina/engine"
	"github.com/nathoo/lumina/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	line    types.Line
	isInput bool // true for echoed player input
	isMenu  bool // true for numbered options
	isHint  bool // true for input hints and errors
}

// Model is the Bubble Tea model for the Lumina TUI.
type Model struct {
	viewport viewport.Model
	input    textinput.Model

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	status    types.Player
	hasStatus bool

	// At most one engine request is pending at a time.
	choice *choiceRequestMsg
	prompt *promptRequestMsg
	pause  *pauseRequestMsg

	width    int
	height   int
	ready    bool
	finished bool
	quitting bool
}

// New creates an idle TUI model. Story output arrives as messages.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 64
	ti.PromptStyle = styleInputPrompt

	return Model{input: ti}
}

// Run plays a session with eng on its own goroutine while the Bubble Tea
// program owns the terminal. The engine's UI is replaced by a Bridge.
func Run(ctx context.Context, eng *engine.Engine) (types.Ending, error) {
	p := tea.NewProgram(New(), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	bridge := NewBridge(p.Send)
	eng.UI = bridge

	type result struct {
		ending types.Ending
		err    error
	}
	results := make(chan result, 1)
	go func() {
		ending, err := eng.Run(ctx)
		p.Send(sessionEndMsg{ending: ending, err: err})
		results <- result{ending: ending, err: err}
	}()

	_, runErr := p.Run()
	bridge.Close()
	res := <-results

	if res.err != nil {
		return res.ending, res.err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return res.ending, fmt.Errorf("running tui: %w", runErr)
	}
	return res.ending, nil
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resize, engine requests).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.input.Width = max(m.width-4, 1)

		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case lineMsg:
		m = m.appendLines(rawLine{line: msg.line})
		return m, nil

	case statusMsg:
		m.status = msg.player
		m.hasStatus = true
		return m, nil

	case choiceRequestMsg:
		m.choice = &msg
		lines := []rawLine{hintLine("Escolha sua ação:")}
		for i, opt := range msg.options {
			lines = append(lines, rawLine{line: types.Line{Text: fmt.Sprintf("%d. %s", i+1, opt)}, isMenu: true})
		}
		m = m.appendLines(lines...)
		m.input.Placeholder = fmt.Sprintf("Sua escolha (1-%d)", len(msg.options))
		return m, nil

	case promptRequestMsg:
		m.prompt = &msg
		m = m.appendLines(rawLine{line: types.Line{Voice: types.VoicePlayer, Text: msg.question}})
		m.input.Placeholder = ""
		return m, nil

	case pauseRequestMsg:
		m.pause = &msg
		m.input.Placeholder = "Pressione ENTER para continuar..."
		return m, nil

	case sessionEndMsg:
		m.finished = true
		if msg.err != nil && !errors.Is(msg.err, engine.ErrInputAborted) {
			m = m.appendLines(hintLine("Erro: " + msg.err.Error()))
		}
		m = m.appendLines(hintLine("Pressione ENTER para sair."))
		m.input.Placeholder = ""
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter answers the pending engine request with the submitted line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	switch {
	case m.finished:
		m.quitting = true
		return m, tea.Quit

	case m.pause != nil:
		m.pause.reply <- struct{}{}
		m.pause = nil
		m.input.Placeholder = ""

	case m.choice != nil:
		if input == "" {
			return m, nil
		}
		m = m.appendLines(rawLine{line: types.Line{Text: input}, isInput: true})
		idx, ok := cli.ParseChoice(input, len(m.choice.options))
		if !ok {
			m = m.appendLines(hintLine("Escolha inválida! Tente novamente."))
			return m, nil
		}
		m.choice.reply <- idx
		m.choice = nil
		m.input.Placeholder = ""

	case m.prompt != nil:
		if input == "" {
			return m, nil
		}
		m = m.appendLines(rawLine{line: types.Line{Text: input}, isInput: true})
		m.prompt.reply <- input
		m.prompt = nil
	}
	return m, nil
}

func hintLine(text string) rawLine {
	return rawLine{line: types.Line{Voice: types.VoiceSystem, Text: text}, isHint: true}
}

// appendLines adds lines to the narrative and refreshes the viewport.
func (m Model) appendLines(lines ...rawLine) Model {
	m.rawLines = append(m.rawLines, lines...)
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		text := lineText(rl.line)
		if text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(text, width)

		switch {
		case rl.isInput:
			styled = append(styled, styledPlayerInput(wrapped))
		case rl.isMenu:
			styled = append(styled, styleMenu.Render(wrapped))
		case rl.isHint:
			styled = append(styled, styleHint.Render(wrapped))
		default:
			styled = append(styled, styledLine(rl.line, wrapped))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Carregando..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap limited to paging keys; the
// arrow keys stay with the text input.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
