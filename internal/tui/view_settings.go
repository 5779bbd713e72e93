package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/quill/internal/config"
)

func (a *App) renderSettings() string {
	var b strings.Builder
	cfg := a.state.config

	title := styleTitle.Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	var description string
	var models []string
	if provider := config.GetProvider(cfg.Provider); provider != nil {
		providerName = provider.Name
		description = provider.Description
		models = provider.Models
	}

	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}

	configLines := []string{
		fmt.Sprintf("  Provider:    %s", providerName),
		fmt.Sprintf("               %s", truncate(description, 44)),
		fmt.Sprintf("  Endpoint:    %s", truncate(cfg.BaseURL, 44)),
		fmt.Sprintf("  Model:       %s", cfg.Model),
		fmt.Sprintf("  API Key:     %s (%s)", cfg.MaskedAPIKey(), cfg.KeySource()),
		fmt.Sprintf("  Temperature: %.1f", cfg.Temperature),
		fmt.Sprintf("  Max tokens:  %d", cfg.MaxTokens),
		fmt.Sprintf("  Timeout:     %s", timeout),
		fmt.Sprintf("  Language:    %s", a.state.catalog.Locale()),
	}
	if len(models) > 0 {
		configLines = append(configLines, fmt.Sprintf("  Known:       %s", truncate(strings.Join(models, ", "), 44)))
	}
	if cfg.LogFile != "" {
		configLines = append(configLines, fmt.Sprintf("  Log file:    %s", truncate(cfg.LogFile, 44)))
	}

	configBox := styleBox.
		Width(60).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	path, err := config.ConfigPath()
	if err != nil {
		path = "$" + config.PathEnv
	}
	hints := []string{
		"  Settings are read once at startup from",
		"  " + truncate(path, 54),
		"  and QUILL_* environment variables.",
	}
	hintsBox := styleBox.
		Width(60).
		Render(strings.Join(hints, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hintsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
