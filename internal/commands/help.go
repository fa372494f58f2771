package commands

import (
	"context"
	"flag"
	"fmt"

	"quicktask/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "quicktask help" }
func (c *HelpCmd) Interactive() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprint(env.Out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  quicktask [common flags]                    Show the quick task form
  quicktask popup [common flags]              Show the quick task form
  quicktask add [common flags] [--note <text>] <title...>
  quicktask login [common flags]
  quicktask logout [common flags]
  quicktask help
  quicktask version

Form keys:
  enter            Add the task to the first task list
  esc, ctrl+c      Close without adding

Common flags:
  --config <dir>   Directory holding credentials.json, token.json and the log
  --quiet          Suppress informational output
  --debug          Log at debug level and mirror logs to stderr

Environment:
  QUICKTASK_DIR, QUICKTASK_LOG_LEVEL, QUICKTASK_NOTE,
  QUICKTASK_CALLBACK_PORT, QUICKTASK_API_TIMEOUT
`
