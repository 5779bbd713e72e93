package tui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/llm"
)

func (a *App) renderUnavailable() string {
	var b strings.Builder
	ui := a.state.catalog.UI()
	width := min(60, a.width-4)

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render(ui.ProbeFailed)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	errMsg := "Unknown error"
	if a.state.probeErr != nil {
		errMsg = a.state.probeErr.Error()
	}
	errBox := styleBox.
		Width(width).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	msg := lipgloss.NewStyle().Width(width).Render(ui.Unavailable)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
	b.WriteString("\n\n")

	if suggestions := a.suggestions(); len(suggestions) > 0 {
		suggBox := styleBox.
			Width(width).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// suggestions returns hints for the probe failure
func (a *App) suggestions() []string {
	err := a.state.probeErr
	if err == nil {
		return nil
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Unauthorized():
			hint := fmt.Sprintf("Set %s to a valid key", config.APIKeyEnv)
			if src := a.state.config.KeySource(); src != config.APIKeyEnv {
				hint = fmt.Sprintf("Set %s (or %s) to a valid key", src, config.APIKeyEnv)
			}
			suggestions := []string{hint, "A .env file in the working directory is read too"}
			if p := config.GetProvider(a.state.config.Provider); p != nil && p.SignupURL != "" {
				suggestions = append(suggestions, "Get a key at "+p.SignupURL)
			}
			return suggestions
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return []string{"You've hit the API rate limit", "Wait a moment and try again"}
		case apiErr.StatusCode == http.StatusNotFound:
			return []string{
				fmt.Sprintf("Check base_url (%s) and model (%s)", a.state.config.BaseURL, a.state.config.Model),
			}
		}
		return nil
	}

	errLower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errLower, "deadline") || strings.Contains(errLower, "timeout"):
		return []string{"The endpoint did not answer in time", "Check your internet connection"}
	case strings.Contains(errLower, "connect") || strings.Contains(errLower, "no such host"):
		suggestions := []string{"Check your internet connection"}
		if a.state.config.Provider == "ollama" {
			suggestions = append(suggestions, "Make sure Ollama is running: ollama serve")
		}
		return suggestions
	}
	return nil
}
