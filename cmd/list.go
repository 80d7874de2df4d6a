package cmd

import (
	"encoding/json"
	"fmt"

	listadapter "github.com/bnema/scantally/internal/adapters/render/list"
	"github.com/bnema/scantally/internal/application"
	"github.com/spf13/cobra"
)

func newListCmd(app *app) *cobra.Command {
	var jsonOutput bool
	var completed bool
	var sortOrder string
	var finish string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the counted item list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order := application.SortOrder(sortOrder)
			if !order.Valid() {
				return fmt.Errorf("invalid --sort %q (want first-seen, quantity or key)", sortOrder)
			}

			var intent application.Intent
			if finish != "" {
				parsed, err := application.ParseIntent(finish)
				if err != nil {
					return err
				}
				intent = parsed
			}

			listing, err := app.service.Items(cmd.Context())
			if err != nil {
				return fmt.Errorf("list items: %w", err)
			}

			if jsonOutput {
				listing.Items = application.SortItems(listing.Items, order)
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(listing); err != nil {
					return err
				}
			} else {
				rendered, err := app.listRenderer(listing, listadapter.RenderOptions{
					Now:       app.now(),
					Completed: completed,
					Sort:      order,
				})
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
					return err
				}
			}

			if finish == "" {
				return nil
			}
			if err := app.service.Finish(cmd.Context(), intent); err != nil {
				return fmt.Errorf("finish list: %w", err)
			}

			message := "Resuming scanning"
			if intent == application.IntentRestart {
				message = "Restarted scanning"
			}
			if jsonOutput {
				_, err = fmt.Fprintln(cmd.ErrOrStderr(), message)
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the listing as JSON")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the order as completed in the header")
	cmd.Flags().StringVar(&sortOrder, "sort", string(application.SortFirstSeen), "Row order: first-seen, quantity or key")
	cmd.Flags().StringVar(&finish, "finish", "", "After listing, restart (clear everything) or resume scanning")

	return cmd
}
