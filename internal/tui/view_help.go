package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/quill/internal/prompts"
)

func (a *App) renderHelp() string {
	var b strings.Builder
	width := min(70, a.width-4)

	title := styleTitle.Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Modes
	var modes []string
	for _, m := range prompts.All() {
		modes = append(modes, fmt.Sprintf("  %-18s %s", a.state.catalog.Label(m), a.state.catalog.Description(m)))
	}
	modesBox := styleBox.
		Width(width).
		Render(strings.Join(modes, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, modesBox))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	var shortcuts []string
	for _, group := range keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			shortcuts = append(shortcuts, fmt.Sprintf("  %-12s %s", h.Key, h.Desc))
		}
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.
		Width(width).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
