package tui

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/prompts"
	"github.com/sant0-9/quill/internal/writer"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputHeight   = 6

	// rows taken by everything on the form except the result viewport
	formChrome = 24

	defaultProbeTimeout = 30 * time.Second
)

// ErrCanceled is the failure shown when a request is cancelled with esc
var ErrCanceled = errors.New("request canceled")

type view int

const (
	viewConnecting view = iota
	viewUnavailable
	viewForm
	viewSettings
	viewHelp
)

// Options tune the App; the zero value is usable
type Options struct {
	InitialMode   prompts.Mode
	MarkdownStyle string
	// Clipboard receives the reply on ctrl+y; nil disables copying
	Clipboard    func(string) error
	ProbeTimeout time.Duration
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	writer   *writer.Writer
	quitting bool

	markdownStyle string
	clipboard     func(string) error
	probeTimeout  time.Duration
}

func NewApp(w *writer.Writer, cfg *config.Config, opts Options) *App {
	mode := opts.InitialMode
	if !mode.Valid() {
		mode = prompts.WritingAssistant
	}
	style := opts.MarkdownStyle
	if style == "" {
		style = DefaultMarkdownStyle
	}
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	return &App{
		width:         defaultWidth,
		height:        defaultHeight,
		view:          viewConnecting,
		state:         newState(cfg, w.Catalog(), mode),
		writer:        w,
		markdownStyle: style,
		clipboard:     opts.Clipboard,
		probeTimeout:  timeout,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		a.state.spinner.Tick,
		a.testConnection(),
	)
}

func (a *App) testConnection() tea.Cmd {
	w, timeout := a.writer, a.probeTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return probeResultMsg{err: w.CheckConnection(ctx)}
	}
}

type probeResultMsg struct{ err error }

type replyMsg struct {
	id    int
	reply writer.Reply
}

type clipboardMsg struct{ err error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case probeResultMsg:
		if msg.err != nil {
			a.state.probeErr = msg.err
			a.view = viewUnavailable
			return a, nil
		}
		a.view = viewForm
		return a, a.setFocus(focusInput)

	case replyMsg:
		// stale: cancelled or superseded
		if !a.state.busy || msg.id != a.state.seq {
			return a, nil
		}
		a.finish(msg.reply)
		return a, nil

	case clipboardMsg:
		if msg.err != nil {
			log.Printf("tui: copy to clipboard: %v", msg.err)
			a.state.notice = styleError.Render(msg.err.Error())
		} else {
			a.state.notice = styleSuccess.Render(a.state.catalog.UI().Copied)
		}
		return a, nil

	case spinner.TickMsg:
		if a.view != viewConnecting && !a.state.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	// Cursor blink and the like
	if a.view == viewForm && a.state.focus == focusInput {
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		return a.quit()
	}

	switch a.view {
	case viewConnecting, viewUnavailable:
		// Nothing but quitting until the probe passes
		if key.Matches(msg, keys.Back) || msg.String() == "q" {
			return a.quit()
		}
		return nil

	case viewHelp, viewSettings:
		if key.Matches(msg, keys.Back, keys.Help, keys.Settings) {
			a.view = viewForm
		}
		return nil
	}

	return a.handleFormKey(msg)
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		if a.state.busy {
			a.cancelRequest()
			return nil
		}
		return a.quit()

	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil

	case key.Matches(msg, keys.Settings):
		a.view = viewSettings
		return nil

	case key.Matches(msg, keys.Copy):
		return a.copyReply()

	case key.Matches(msg, keys.PageUp, keys.PageDown):
		var cmd tea.Cmd
		a.state.viewport, cmd = a.state.viewport.Update(msg)
		return cmd
	}

	// One request at a time; the form is frozen until it finishes
	if a.state.busy {
		return nil
	}

	switch {
	case key.Matches(msg, keys.Submit):
		return a.submit()
	case key.Matches(msg, keys.Next):
		return a.setFocus((a.state.focus + 1) % numFocus)
	case key.Matches(msg, keys.Prev):
		return a.setFocus((a.state.focus + numFocus - 1) % numFocus)
	}

	switch a.state.focus {
	case focusMode:
		switch {
		case key.Matches(msg, keys.Left, keys.Up):
			a.state.mode = a.state.mode.Prev()
		case key.Matches(msg, keys.Right, keys.Down):
			a.state.mode = a.state.mode.Next()
		case key.Matches(msg, keys.Enter):
			return a.setFocus(focusInput)
		}
		return nil

	case focusSubmit:
		if key.Matches(msg, keys.Enter) {
			return a.submit()
		}
		return nil
	}

	var cmd tea.Cmd
	a.state.input, cmd = a.state.input.Update(msg)
	return cmd
}

func (a *App) setFocus(f focus) tea.Cmd {
	a.state.focus = f
	if f == focusInput {
		return a.state.input.Focus()
	}
	a.state.input.Blur()
	return nil
}

// submit starts one request for the current mode. Only an empty input is
// rejected; whitespace is sent as typed.
func (a *App) submit() tea.Cmd {
	a.state.notice = ""
	text := a.state.input.Value()
	if text == "" {
		a.state.result = result{kind: resultWarning}
		a.renderResult()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.state.seq++
	a.state.busy = true
	a.state.cancel = cancel
	a.state.startedAt = time.Now()
	a.state.result = result{}
	a.renderResult()

	id, mode, w := a.state.seq, a.state.mode, a.writer
	return tea.Batch(
		a.state.spinner.Tick,
		func() tea.Msg {
			return replyMsg{id: id, reply: w.Reply(ctx, mode, text)}
		},
	)
}

func (a *App) cancelRequest() {
	if a.state.cancel != nil {
		a.state.cancel()
	}
	log.Printf("tui: request %d canceled after %s", a.state.seq, time.Since(a.state.startedAt).Round(time.Millisecond))
	a.finish(a.writer.Failure(ErrCanceled))
}

func (a *App) finish(r writer.Reply) {
	if a.state.cancel != nil {
		a.state.cancel()
		a.state.cancel = nil
	}
	a.state.busy = false
	a.state.result = result{kind: resultReply, reply: r}
	a.renderResult()
}

func (a *App) copyReply() tea.Cmd {
	if a.clipboard == nil || a.state.result.kind != resultReply {
		return nil
	}
	text, copyFn := a.state.result.reply.String(), a.clipboard
	return func() tea.Msg {
		return clipboardMsg{err: copyFn(text)}
	}
}

func (a *App) quit() tea.Cmd {
	if a.state.cancel != nil {
		a.state.cancel()
	}
	a.quitting = true
	return tea.Quit
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	w := a.boxWidth()
	a.state.input.SetWidth(w - 4)
	a.state.viewport.Width = w
	a.state.viewport.Height = max(3, height-formChrome)
	a.state.help.Width = w
	a.renderResult()
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewConnecting:
		return a.renderConnecting()
	case viewUnavailable:
		return a.renderUnavailable()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderForm()
	}
}
