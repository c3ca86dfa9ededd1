package main

import (
	"github.com/spf13/cobra"

	"github.com/cncmill/gcodeclean/internal/obs"
)

var (
	verbose bool
	logger  = obs.New()
)

var rootCmd = &cobra.Command{
	Use:           "gcodeclean",
	Short:         "Clean, split and merge G-code programs",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetDebug()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(mergeCmd)
}
