package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tally",
		Short:         "Scan tally: count scanned barcodes into a deduplicated item list",
		Long:          "tally keeps a deduplicated, quantity-counted list of scanned barcodes. Observations are read from stdin, a file, or a local HTTP surface; suspend and resume carry counted progress across interruptions.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newScanCmd(app),
		newListCmd(app),
		newSuspendCmd(app),
		newResumeCmd(app),
		newResetCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
