package commands

import (
	"context"
	"flag"
	"fmt"

	"quicktask/internal/auth"
	"quicktask/internal/exitcode"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove the stored credential" }
func (c *LogoutCmd) Usage() string     { return "quicktask logout [common flags]" }
func (c *LogoutCmd) Interactive() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string) int {
	if !env.Config.HasToken() {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "not logged in")
		}
		return exitcode.Success
	}

	if err := auth.NewFileStore(env.Config.TokenPath()).Remove(); err != nil {
		fmt.Fprintf(env.ErrOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}
	env.Log.Info().Msg("credential removed")

	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}
