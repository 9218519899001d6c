package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/lumina/engine/state"
)

// renderStatusBar produces a full-width inverted status line from the last
// player snapshot: vitals on the left, weapon and inventory on the right.
func (m Model) renderStatusBar() string {
	if !m.hasStatus {
		return styleStatusBar.Width(m.width).Render(" A Lenda do Cristal Perdido")
	}
	p := m.status

	name := p.Name
	if name == "" {
		name = "Aventureiro"
	}
	left := fmt.Sprintf(" %s Nv %d | ❤ %d/%d | ✨ %d/%d | XP %d/%d | 💰 %d",
		name, p.Level, p.Health, p.MaxHealth, p.Mana, p.MaxMana,
		p.Experience, state.XPThreshold(p.Level), p.Gold)

	// Show inventory items if they fit, otherwise just count.
	right := fmt.Sprintf("⚔ %s ", p.Weapon)
	if len(p.Inventory) > 0 {
		candidate := fmt.Sprintf("⚔ %s | %s ", p.Weapon, strings.Join(p.Inventory, ", "))
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("⚔ %s | Itens: %d ", p.Weapon, len(p.Inventory))
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
