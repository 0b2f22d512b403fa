// Package main is the entry point for tupcfg.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/cmd/tupcfg/commands"
	"go.trai.ch/tupcfg/internal/app"
	"go.trai.ch/tupcfg/internal/core/domain"
	_ "go.trai.ch/tupcfg/internal/wiring"
)

const (
	exitOK            = 0
	exitFailure       = 1
	exitConfiguration = 2
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, provideComponents))
}

func provideComponents(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close() }, nil
}

func run(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, release, err := provider(ctx)
	if err != nil {
		// The logger is part of the components that failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailure
	}
	defer release()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		if domain.IsConfigurationError(err) {
			return exitConfiguration
		}
		return exitFailure
	}
	return exitOK
}
