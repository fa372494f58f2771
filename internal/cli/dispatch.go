// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"

	"quicktask/internal/commands"
	"quicktask/internal/config"
	"quicktask/internal/exitcode"
	"quicktask/internal/logging"
	"quicktask/internal/service"
)

// DefaultCommand runs when no command is named.
const DefaultCommand = "popup"

// ServiceFactory resolves the credential and creates a Service from config.
// prompt receives the consent URL when a consent flow is needed.
type ServiceFactory func(ctx context.Context, cfg *config.Config, log zerolog.Logger, prompt io.Writer) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No command, possibly with common flags: show the form.
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return d.dispatch(ctx, DefaultCommand, args, out, errOut)
	}
	return d.dispatch(ctx, args[0], args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, err := d.registry.Lookup(cmdName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) (code int) {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Common flags
	var configDir string
	var quiet bool
	var debugMode bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debugMode, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debugMode

	log, closeLog := openLog(cfg, cmd, errOut)
	defer closeLog()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("unexpected error")
			fmt.Fprintf(errOut, "error: unexpected error: %v\n", r)
			code = exitcode.InternalError
		}
	}()

	log.Info().Str("command", cmd.Name()).Str("dir", cfg.Dir).Msg("starting")

	env := &commands.Env{
		Config: cfg,
		Log:    log,
		Connect: func(ctx context.Context, prompt io.Writer) (service.Service, error) {
			if d.factory == nil {
				return nil, fmt.Errorf("no task service configured")
			}
			return d.factory(ctx, cfg, log, prompt)
		},
		Out:    out,
		ErrOut: errOut,
	}

	code = cmd.Run(ctx, env, positionalArgs)
	log.Info().Int("exit", code).Msg("finished")
	return code
}

// openLog opens the log file in cfg.Dir. With --debug, non-interactive
// commands also mirror the log to errOut. A log that cannot be opened is
// replaced by a no-op logger.
func openLog(cfg *config.Config, cmd commands.Command, errOut io.Writer) (zerolog.Logger, func()) {
	level := cfg.LogLevel
	var mirror io.Writer
	if cfg.Debug {
		level = "debug"
		if !cmd.Interactive() {
			mirror = errOut
		}
	}

	log, closer, err := logging.Open(cfg.LogPath(), level, mirror)
	if err != nil {
		if mirror != nil {
			fmt.Fprintf(errOut, "warning: %v\n", err)
		}
		return zerolog.Nop(), func() {}
	}
	return log, func() { closer.Close() }
}

func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
	default:
		fmt.Fprintf(errOut, "error: %s\n", errStr)
	}
	return exitcode.UserError
}
