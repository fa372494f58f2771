package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"quicktask/internal/exitcode"
	"quicktask/internal/quickadd"
	"quicktask/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd adds a task without showing the form.
type AddCmd struct {
	note string
}

// SetNote sets the note (for testing).
func (c *AddCmd) SetNote(note string) {
	c.note = note
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task without the form" }
func (c *AddCmd) Usage() string     { return "quicktask add [--note <text>] <title...>" }
func (c *AddCmd) Interactive() bool { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.note, "note", "", "")
	fs.StringVar(&c.note, "n", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(env.ErrOut, "error: title required")
		return exitcode.UserError
	}

	note := c.note
	if note == "" {
		note = env.Config.TaskNote()
	}

	connect := func(ctx context.Context) (service.Service, error) {
		return env.Connect(ctx, env.ErrOut)
	}
	if _, err := quickadd.NewSubmitter(connect, note, env.Log).Submit(ctx, title); err != nil {
		return reportError(env, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}
