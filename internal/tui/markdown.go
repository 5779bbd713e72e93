package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// DefaultMarkdownStyle renders without colors; main picks "dark" or "light"
// from the terminal background before the program starts
const DefaultMarkdownStyle = "notty"

// MarkdownStyle picks the glamour style matching the terminal background.
// It queries the terminal, so call it before the program takes over stdin.
func MarkdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// renderMarkdown renders md for the terminal, falling back to the raw text
func renderMarkdown(style string, width int, md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
	)
	if err != nil {
		log.Printf("tui: markdown renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("tui: render markdown: %v", err)
		return md
	}
	return trimRendered(out)
}

// trimRendered drops the blank lines and the document margin glamour puts
// around its output, along with the trailing padding on each line
func trimRendered(out string) string {
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	margin := -1
	for _, line := range lines {
		if line == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin > 0 {
		for i, line := range lines {
			if len(line) >= margin {
				lines[i] = line[margin:]
			}
		}
	}
	return strings.Join(lines, "\n")
}

// renderResult builds the viewport content for the current result
func (a *App) renderResult() {
	res := &a.state.result
	if res.kind != resultReply {
		res.rendered = ""
		a.state.viewport.SetContent("")
		return
	}

	width := a.state.viewport.Width
	if res.reply.OK() {
		res.rendered = renderMarkdown(a.markdownStyle, width, res.reply.Text)
	} else {
		res.rendered = styleError.Width(width).Render(res.reply.String())
	}
	a.state.viewport.SetContent(res.rendered)
	a.state.viewport.GotoTop()
}
