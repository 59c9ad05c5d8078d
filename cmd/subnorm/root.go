package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subnorm",
		Short:         "Pick and flatten subtitle tracks downloaded by yt-dlp",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newNormalizeCommand())
	rootCmd.AddCommand(newSelectCommand())

	return rootCmd
}
