package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tupcfg/internal/app"
)

func (c *CLI) newIncludesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "includes <file>... [-I dir]...",
		Short: "Print the headers a C or C++ file includes, directly or not",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, _ := cmd.Flags().GetStringArray("include-dir")
			depfile, _ := cmd.Flags().GetString("depfile")
			return c.app.Includes(cmd.Context(), app.IncludesOptions{
				Files:      args,
				SearchDirs: dirs,
				Jobs:       c.project.Jobs,
				Serial:     c.project.Serial,
				Depfile:    depfile,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringArrayP("include-dir", "I", nil, "Add a directory to the include search path")
	cmd.Flags().String("depfile", "", "Print a Makefile dependency file for this target instead of a list")
	return cmd
}
