package commands

import (
	"context"
	"flag"
	"fmt"

	"quicktask/internal/config"
	"quicktask/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd resolves the credential ahead of the first submission.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google" }
func (c *LoginCmd) Usage() string     { return "quicktask login [common flags]" }
func (c *LoginCmd) Interactive() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string) int {
	if !env.Config.HasClientSecret() {
		fmt.Fprintf(env.ErrOut, "error: %s not found in %s\n", config.ClientSecretFile, env.Config.Dir)
		printSetup(env.ErrOut, env.Config)
		return exitcode.AuthError
	}

	// Connecting refreshes or re-consents as needed and saves the credential.
	if _, err := env.Connect(ctx, env.ErrOut); err != nil {
		return reportError(env, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}
