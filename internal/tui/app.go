// Package tui is the interactive prompt: a single-line input above which the
// transcript of executed commands scrolls.
package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmterm/internal/lineedit"
	"github.com/nikbrunner/bmterm/internal/output"
	"github.com/nikbrunner/bmterm/internal/shell"
	"github.com/nikbrunner/bmterm/internal/tui/layout"
)

// chromeHeight is the number of rows below the transcript: prompt and hint bar.
const chromeHeight = 2

// App is the main bubbletea model for the bookmark prompt.
type App struct {
	queue        *shell.Queue
	editor       *lineedit.Editor
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	copyFn       func(string) error

	input      textinput.Model
	viewport   viewport.Model
	transcript output.Transcript

	// Transient status shown in the hint bar until the next key press.
	message     string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// MessageType determines the styling of the status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageError
)

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Queue        *shell.Queue
	Editor       *lineedit.Editor     // optional, completes the shell commands if nil
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Clipboard    func(string) error   // optional, uses the system clipboard if nil
}

// resultMsg carries one executed command line back from the queue.
type resultMsg struct {
	result output.Result
}

// queueClosedMsg is sent once the queue has stopped delivering results.
type queueClosedMsg struct{}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	editor := params.Editor
	if editor == nil {
		editor = lineedit.New(shell.CommandNames())
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	input := textinput.New()
	input.Prompt = "❯ "
	input.PromptStyle = styles.Prompt
	input.Placeholder = "type 'help' to get started"
	input.CharLimit = layoutConfig.Input.CharLimit
	input.Focus()

	app := App{
		queue:        params.Queue,
		editor:       editor,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		copyFn:       copyFn,
		input:        input,
		viewport:     viewport.New(80, 24-chromeHeight),
		width:        80,
		height:       24,
	}
	app.resize()
	return app
}

// WithDimensions returns a copy of the App sized for a width x height terminal.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.resize()
	a.syncViewport()
	return a
}

// Input returns the current contents of the input field.
func (a App) Input() string {
	return a.input.Value()
}

// Transcript returns the blocks currently shown.
func (a App) Transcript() []output.Block {
	return a.transcript.Blocks()
}

// Message returns the current status message.
func (a App) Message() string {
	return a.message
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.waitForResult())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.WithDimensions(msg.Width, msg.Height), nil

	case resultMsg:
		a.apply(msg.result)
		return a, a.waitForResult()

	case queueClosedMsg:
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.message = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Submit):
		line, ok := a.editor.Submit(a.input.Value())
		if !ok {
			return a, nil
		}
		a.input.Reset()
		if err := a.queue.Submit(line); err != nil {
			a.apply(shell.FullResult(line))
		}
		return a, nil

	case key.Matches(msg, a.keys.Prev):
		if buffer, ok := a.editor.Prev(); ok {
			a.setInput(buffer)
		}
		return a, nil

	case key.Matches(msg, a.keys.Next):
		a.setInput(a.editor.Next())
		return a, nil

	case key.Matches(msg, a.keys.Complete):
		if buffer, ok := a.editor.Complete(a.input.Value()); ok {
			a.setInput(buffer)
		}
		return a, nil

	case key.Matches(msg, a.keys.ScrollUp), key.Matches(msg, a.keys.ScrollDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case key.Matches(msg, a.keys.Copy):
		a.copyLast()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// waitForResult blocks on the queue for the next result.
func (a App) waitForResult() tea.Cmd {
	if a.queue == nil {
		return nil
	}
	results := a.queue.Results()
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return queueClosedMsg{}
		}
		return resultMsg{result: res}
	}
}

// apply adds a result to the transcript and scrolls to the newest block.
func (a *App) apply(res output.Result) {
	a.transcript.Apply(res)
	a.syncViewport()
}

func (a *App) setInput(buffer string) {
	a.input.SetValue(buffer)
	a.input.CursorEnd()
}

func (a *App) copyLast() {
	last, ok := a.transcript.Last()
	if !ok {
		a.setMessage(MessageInfo, "Nothing to copy")
		return
	}
	if err := a.copyFn(output.PlainRenderer{}.Render(last)); err != nil {
		a.setMessage(MessageError, "Copy failed: "+err.Error())
		return
	}
	a.setMessage(MessageInfo, "Copied to clipboard")
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.message = text
}

func (a *App) resize() {
	contentWidth := a.width - a.styles.App.GetHorizontalPadding()
	a.viewport.Width = contentWidth
	a.viewport.Height = max(a.height-chromeHeight, 1)
	a.input.Width = max(contentWidth-4, 1)
}

func (a *App) syncViewport() {
	a.viewport.SetContent(a.renderTranscript())
	a.viewport.GotoBottom()
}
