// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"quicktask/internal/config"
	"quicktask/internal/service"
)

// Connect resolves the credential and returns a ready service.
// prompt receives the consent URL when a consent flow is needed.
type Connect func(ctx context.Context, prompt io.Writer) (service.Service, error)

// Env is what a command runs against.
type Env struct {
	Config  *config.Config
	Log     zerolog.Logger
	Connect Connect
	Out     io.Writer
	ErrOut  io.Writer
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Interactive reports whether the command owns the terminal. Interactive
	// commands never get logs mirrored to stderr.
	Interactive() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional arguments left after
	// flag parsing and returns the exit code. The service is only built when
	// the command calls env.Connect.
	Run(ctx context.Context, env *Env, args []string) int
}
