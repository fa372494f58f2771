// Package main is the entry point for the quicktask CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"quicktask/internal/backend/googletasks"
	"quicktask/internal/cli"
	"quicktask/internal/commands"
	"quicktask/internal/config"
	"quicktask/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config, log zerolog.Logger, prompt io.Writer) (service.Service, error) {
		client, err := googletasks.Dial(ctx, cfg, log, prompt)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
