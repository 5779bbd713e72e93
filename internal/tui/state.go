package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/writer"
)

// focus is the form element receiving keys
type focus int

const (
	focusMode focus = iota
	focusInput
	focusSubmit
	numFocus
)

type resultKind int

const (
	resultNone resultKind = iota
	resultWarning
	resultReply
)

// result is what the form shows under the submit button
type result struct {
	kind  resultKind
	reply writer.Reply
	// terminal rendering of the reply, rebuilt on resize
	rendered string
}

type state struct {
	// Config
	config  *config.Config
	catalog *prompts.Catalog

	// Probe
	probeErr error

	// Form
	mode  prompts.Mode
	focus focus
	input textarea.Model

	// Processing
	busy      bool
	seq       int
	cancel    context.CancelFunc
	startedAt time.Time
	spinner   spinner.Model

	// Result
	result   result
	viewport viewport.Model
	notice   string

	help help.Model
}

func newState(cfg *config.Config, catalog *prompts.Catalog, mode prompts.Mode) *state {
	input := textarea.New()
	input.Placeholder = catalog.UI().Placeholder
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.SetWidth(defaultWidth - 8)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleTitle

	vp := viewport.New(defaultWidth-4, 5)

	return &state{
		config:   cfg,
		catalog:  catalog,
		mode:     mode,
		focus:    focusInput,
		input:    input,
		spinner:  sp,
		viewport: vp,
		help:     help.New(),
	}
}
