package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"quicktask/internal/exitcode"
	"quicktask/internal/quickadd"
	"quicktask/internal/service"
	"quicktask/internal/ui"
)

func init() {
	Register(&PopupCmd{})
}

// PopupCmd shows the quick task form. It is the default command.
type PopupCmd struct {
	// run replaces ui.Run in tests.
	run func(ui.Form, ...tea.ProgramOption) (ui.Form, error)
}

func (c *PopupCmd) Name() string      { return "popup" }
func (c *PopupCmd) Aliases() []string { return nil }
func (c *PopupCmd) Synopsis() string  { return "Show the quick task form" }
func (c *PopupCmd) Usage() string     { return "quicktask [popup] [common flags]" }
func (c *PopupCmd) Interactive() bool { return true }

func (c *PopupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PopupCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	connect := func(ctx context.Context) (service.Service, error) {
		// The terminal belongs to the form; the consent URL goes to the log.
		return env.Connect(ctx, io.Discard)
	}
	submitter := quickadd.NewSubmitter(connect, env.Config.TaskNote(), env.Log)
	form := ui.NewForm(ctx, submitter.Submit, env.Log)

	run := c.run
	if run == nil {
		run = ui.Run
	}

	env.Log.Info().Msg("showing form")
	final, err := run(form, tea.WithAltScreen(), tea.WithContext(ctx))
	if errors.Is(err, tea.ErrProgramKilled) {
		env.Log.Info().Err(err).Msg("form closed by signal")
		return exitcode.Success
	}
	if err != nil {
		env.Log.Error().Err(err).Msg("form failed")
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.InternalError
	}

	if err := final.Err(); err != nil {
		// Already shown in the form's error dialog.
		return exitCodeFor(err)
	}
	if final.Added() {
		env.Log.Info().Msg("form closed after adding task")
	} else {
		env.Log.Info().Msg("form closed")
	}
	return exitcode.Success
}

// SetRunner replaces the program runner (for testing).
func (c *PopupCmd) SetRunner(run func(ui.Form, ...tea.ProgramOption) (ui.Form, error)) {
	c.run = run
}
