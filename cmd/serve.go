package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/scantally/internal/adapters/transport/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string
	var suspendOnExit bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept observations over a local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", ln.Addr()); err != nil {
				_ = ln.Close()
				return err
			}

			serveErr := httpapi.Serve(ctx, ln, httpapi.NewRouter(app.service, app.logger), app.logger)
			if !suspendOnExit {
				return serveErr
			}

			snapshot, err := app.service.Suspend(context.WithoutCancel(ctx))
			if err != nil {
				return errors.Join(serveErr, fmt.Errorf("suspend on exit: %w", err))
			}
			app.logger.Info("suspended on exit", zap.Int("observations", snapshot.Total()))

			return serveErr
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.serveAddr, "Listen address")
	cmd.Flags().BoolVar(&suspendOnExit, "suspend-on-exit", false, "Move the live list into the carry-over when the server stops")

	return cmd
}
