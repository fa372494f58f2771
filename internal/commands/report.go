package commands

import (
	"errors"
	"fmt"
	"io"

	"quicktask/internal/auth"
	"quicktask/internal/config"
	"quicktask/internal/exitcode"
)

// exitCodeFor classifies a submission or connection error.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, auth.ErrClientSecretMissing), errors.Is(err, auth.ErrAuthFailed):
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}

// reportError prints err, plus setup instructions when the client secret is
// missing, and returns the matching exit code.
func reportError(env *Env, err error) int {
	env.Log.Error().Err(err).Msg("command failed")
	fmt.Fprintf(env.ErrOut, "error: %v\n", err)
	if errors.Is(err, auth.ErrClientSecretMissing) {
		printSetup(env.ErrOut, env.Config)
	}
	return exitCodeFor(err)
}

func printSetup(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "To add tasks to Google Tasks, quicktask needs OAuth client credentials:")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "1. Go to https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(w, "2. Enable the Google Tasks API for your project:")
	fmt.Fprintln(w, "   https://console.cloud.google.com/apis/library/tasks.googleapis.com")
	fmt.Fprintln(w, "3. Create an OAuth client ID of type 'Desktop app' and download the JSON file")
	fmt.Fprintln(w, "4. Save it as:")
	fmt.Fprintf(w, "   %s\n", cfg.ClientSecretPath())
}
