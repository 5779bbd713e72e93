package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/quill/internal/prompts"
)

func (a *App) renderForm() string {
	ui := a.state.catalog.UI()
	width := a.boxWidth()

	var parts []string

	parts = append(parts, styleTitle.Render(ui.Title), "")

	// Mode selector
	parts = append(parts, a.fieldLabel(focusMode, ui.ModeLabel))
	var chips []string
	for _, m := range prompts.All() {
		style := styleModeInactive
		if m == a.state.mode {
			style = styleModeActive
		}
		chips = append(chips, style.Render(a.state.catalog.Label(m)))
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	hint := styleSubtitle.Width(width).Render(a.state.catalog.CurrentMode(a.state.mode))
	parts = append(parts, hint, "")

	// Text input
	parts = append(parts, a.fieldLabel(focusInput, ui.InputLabel))
	inputBox := styleBox.Width(width)
	if a.state.focus == focusInput {
		inputBox = inputBox.BorderForeground(colorPrimary)
	}
	parts = append(parts, inputBox.Render(a.state.input.View()))

	// Submit button
	button := styleButton
	if a.state.focus == focusSubmit {
		button = styleButtonFocused
	}
	parts = append(parts, button.Render(ui.Submit))

	// Result
	switch {
	case a.state.busy:
		elapsed := time.Since(a.state.startedAt).Seconds()
		parts = append(parts, fmt.Sprintf("%s %s %s", a.state.spinner.View(), ui.Busy,
			styleSubtitle.Render(fmt.Sprintf("%.1fs  [Esc] Cancel", elapsed))))
	case a.state.result.kind == resultWarning:
		parts = append(parts, styleWarning.Render(ui.EmptyWarning))
	case a.state.result.kind == resultReply:
		parts = append(parts, styleHeading.Render(ui.Heading), a.state.viewport.View())
	}

	if a.state.notice != "" {
		parts = append(parts, a.state.notice)
	}

	parts = append(parts, "", a.statusLine(), a.state.help.View(keys))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, form)
}

// fieldLabel marks the focused field with a cursor
func (a *App) fieldLabel(f focus, label string) string {
	if a.state.focus == f {
		return styleTitle.Render("> " + label)
	}
	return "  " + label
}

// statusLine shows the model and an estimate of the input's token count
func (a *App) statusLine() string {
	var parts []string

	model := a.state.config.Model
	parts = append(parts, fmt.Sprintf("%s via %s", model, a.state.config.Provider))

	used := estimateTokens(a.state.input.Value())
	limit := getContextLimit(model)
	pct := float64(used) / float64(limit) * 100
	parts = append(parts, fmt.Sprintf("~%d tokens (%.1f%% of %.0fk ctx)", used, pct, float64(limit)/1000))

	if r := a.state.result; r.kind == resultReply && r.reply.OK() && r.reply.Usage.TotalTokens > 0 {
		parts = append(parts, fmt.Sprintf("last reply %d tokens", r.reply.Usage.TotalTokens))
	}

	return styleStatusBar.Render(strings.Join(parts, "  "))
}
