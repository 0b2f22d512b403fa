// Package commands implements the CLI commands for tupcfg.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tupcfg/internal/app"
	"go.trai.ch/tupcfg/internal/build"
)

// CLI represents the command line interface for tupcfg.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	project app.ProjectOptions
	verbose bool
}

// Application represents the application logic interface.
type Application interface {
	Generate(ctx context.Context, opts app.GenerateOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Includes(ctx context.Context, opts app.IncludesOptions, w io.Writer) error
	SetVerbose(verbose bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tupcfg",
		Short:         "Generate Tupfiles or Makefiles from a project description",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.project.ProjectDir, "project", "C", "", "Project directory (default: current directory)")
	flags.StringVarP(&c.project.ProjectFile, "file", "f", "", "Project description, relative to the project directory")
	flags.StringVarP(&c.project.BuildDir, "build-dir", "B", "", "Build directory, relative to the project directory")
	flags.StringVarP(&c.project.Generator, "generator", "g", "", "Backend: tup or makefile")
	flags.IntVarP(&c.project.Jobs, "jobs", "j", 0, "Include scanner workers (default: number of CPUs)")
	flags.BoolVar(&c.project.Serial, "serial", false, "Scan includes on a single goroutine")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Print debug output")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		c.app.SetVerbose(c.verbose)
	}

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newIncludesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
