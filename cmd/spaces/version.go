package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "spaces version %s\n", version)
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Fprintf(out, "  go:     %s\n", info.GoVersion)
			}
		},
	}
}
