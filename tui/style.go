package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/lumina/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("14"))

	styleMenu = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// voiceStyles colors each speaker the way the story was first told:
// bright cyan hero, magenta sage, yellow guards, red foes, green folk,
// blue system text.
var voiceStyles = map[types.Voice]lipgloss.Style{
	types.VoiceNarrator: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	types.VoicePlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	types.VoiceSage:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	types.VoiceGuard:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	types.VoiceEnemy:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	types.VoiceNPC:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	types.VoiceSystem:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
}

// voiceStyle returns the style for a voice, falling back to narration.
func voiceStyle(v types.Voice) lipgloss.Style {
	if s, ok := voiceStyles[v]; ok {
		return s
	}
	return voiceStyles[types.VoiceNarrator]
}

// lineText formats a story line without styling.
func lineText(l types.Line) string {
	if l.Speaker != "" {
		return l.Speaker + ": \"" + l.Text + "\""
	}
	return l.Text
}

// styledLine renders an already wrapped story line.
func styledLine(l types.Line, wrapped string) string {
	if l.Voice == types.VoiceSystem && strings.HasPrefix(l.Text, "[trace]") {
		return styleTrace.Render(wrapped)
	}
	return voiceStyle(l.Voice).Render(wrapped)
}

// styledPlayerInput renders the echoed player input in green with "> " prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Width is counted in runes.
func wordWrap(text string, width int) string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := utf8.RuneCountInString(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}
