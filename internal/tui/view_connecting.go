package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderConnecting() string {
	var b strings.Builder
	ui := a.state.catalog.UI()

	title := styleTitle.Render(ui.Title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	status := fmt.Sprintf("%s %s", a.state.spinner.View(), ui.Connecting)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
	b.WriteString("\n\n")

	endpoint := styleSubtitle.Render(truncate(a.state.config.BaseURL, 60))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, endpoint))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
