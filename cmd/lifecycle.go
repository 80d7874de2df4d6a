package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSuspendCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suspend",
		Short: "Move the live item list into the carry-over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := app.service.Suspend(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Suspended %d items (%d observations)\n", len(snapshot.Entries), snapshot.Total())
			return err
		},
	}
}

func newResumeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Merge the pending carry-over back into the live item list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged, err := app.service.Resume(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Resumed %d observations\n", merged)
			return err
		},
	}
}

func newResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the live item list and any pending carry-over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.Restart(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cleared item list and carry-over")
			return err
		},
	}
}
