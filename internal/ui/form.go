// Package ui renders the quick task form.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	// Title is shown at the top of the form.
	Title = "Quick Task"

	formWidth = 48
)

// SubmitFunc adds title as a task. A blank title reports added == false.
type SubmitFunc func(ctx context.Context, title string) (added bool, err error)

type state int

const (
	stateEditing state = iota
	stateSubmitting
	stateFailed
	stateDone
)

// submittedMsg carries the result of a submission.
type submittedMsg struct {
	added bool
	err   error
}

// Form is the Bubble Tea model of the one-field form.
type Form struct {
	ctx    context.Context
	submit SubmitFunc
	log    zerolog.Logger

	input  textinput.Model
	state  state
	err    error
	added  bool
	width  int
	height int

	keys  KeyMap
	theme Theme
}

// NewForm creates the form.
func NewForm(ctx context.Context, submit SubmitFunc, log zerolog.Logger) Form {
	ti := textinput.New()
	ti.Placeholder = "New task"
	ti.Prompt = "› "
	ti.CharLimit = 1024
	ti.Width = formWidth - 6
	ti.Focus()

	return Form{
		ctx:    ctx,
		submit: submit,
		log:    log,
		input:  ti,
		keys:   DefaultKeyMap(),
		theme:  DefaultTheme(),
	}
}

// Err returns the submission error, if any.
func (f Form) Err() error { return f.err }

// Added reports whether a task was added.
func (f Form) Added() bool { return f.added }

func (f Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		return f, nil

	case submittedMsg:
		if msg.err != nil {
			f.log.Error().Err(msg.err).Msg("error adding task")
			f.state = stateFailed
			f.err = msg.err
			return f, nil
		}
		if !msg.added {
			f.state = stateEditing
			return f, f.input.Focus()
		}
		f.state = stateDone
		f.added = true
		return f, tea.Quit

	case tea.KeyMsg:
		return f.handleKey(msg)
	}

	if f.state != stateEditing {
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f Form) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch f.state {
	case stateFailed:
		// The error dialog is dismissed by any key, closing the form.
		return f, tea.Quit
	case stateSubmitting:
		if key.Matches(msg, f.keys.Quit) {
			f.log.Info().Msg("interrupted while submitting")
			return f, tea.Quit
		}
		return f, nil
	case stateDone:
		return f, tea.Quit
	}

	switch {
	case key.Matches(msg, f.keys.Quit), key.Matches(msg, f.keys.Cancel):
		f.log.Info().Str("key", msg.String()).Msg("closing form")
		return f, tea.Quit
	case key.Matches(msg, f.keys.Submit):
		title := strings.TrimSpace(f.input.Value())
		if title == "" {
			f.log.Info().Msg("empty task, ignoring")
			return f, nil
		}
		f.state = stateSubmitting
		f.input.Blur()
		return f, f.submitCmd(title)
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f Form) submitCmd(title string) tea.Cmd {
	ctx, submit := f.ctx, f.submit
	return func() tea.Msg {
		added, err := submit(ctx, title)
		return submittedMsg{added: added, err: err}
	}
}

func (f Form) View() string {
	var body string
	switch f.state {
	case stateFailed:
		body = f.theme.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
			f.theme.Error.Render("Error"),
			"",
			wrap(fmt.Sprintf("Error adding task: %v", f.err), formWidth),
			"",
			f.theme.Help.Render("press any key to close"),
		))
	default:
		status := f.theme.Help.Render("enter add • esc close")
		if f.state == stateSubmitting {
			status = f.theme.Status.Render("Adding task… complete sign-in in your browser if asked.")
		}
		body = f.theme.Frame.Width(formWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			f.theme.Title.Render(Title),
			"",
			f.input.View(),
			"",
			status,
		))
	}

	if f.width == 0 || f.height == 0 {
		return body
	}
	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, body)
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		n := len([]rune(w))
		if i > 0 {
			if lineLen+1+n > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += n
	}
	return b.String()
}

// Run shows the form until it is closed and returns its final state.
func Run(form Form, opts ...tea.ProgramOption) (Form, error) {
	final, err := tea.NewProgram(form, opts...).Run()
	if err != nil {
		return form, err
	}
	return final.(Form), nil
}
