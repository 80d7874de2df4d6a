package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/scantally/internal/adapters/source/lines"
	"github.com/bnema/scantally/internal/domain"
	"github.com/spf13/cobra"
)

// scanBatchSize bounds how many observations go into one session write.
const scanBatchSize = 500

func newScanCmd(app *app) *cobra.Command {
	var filePath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Count observations read from stdin or a file",
		Long:  "Reads one observation per line as CATEGORY<TAB>PAYLOAD (a line without a tab is a bare payload). Blank lines and lines starting with # are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input io.Reader = cmd.InOrStdin()
			fromFile := filePath != "" && filePath != "-"
			if fromFile {
				file, err := os.Open(filePath)
				if err != nil {
					return fmt.Errorf("open observations file: %w", err)
				}
				defer file.Close()
				input = file
			}

			var progress ingestProgress
			ingest := func(ctx context.Context, report func(ingestProgress)) error {
				batch := make([]domain.Observation, 0, scanBatchSize)
				flush := func() error {
					if len(batch) == 0 {
						return nil
					}
					accepted, err := app.service.ObserveBatch(ctx, batch)
					if err != nil {
						return err
					}
					progress.Accepted += accepted
					batch = batch[:0]
					report(progress)
					return nil
				}

				err := lines.Scan(ctx, input, func(observation domain.Observation) error {
					progress.Received++
					batch = append(batch, observation)
					if len(batch) < scanBatchSize {
						return nil
					}
					return flush()
				})
				if err != nil {
					return err
				}

				return flush()
			}

			var err error
			if quiet || !fromFile {
				err = ingest(cmd.Context(), func(ingestProgress) {})
			} else {
				label := fmt.Sprintf("Counting %s...", filepath.Base(filePath))
				err = runIngestSpinner(cmd.Context(), cmd.ErrOrStderr(), label, ingest)
			}
			if err != nil {
				return fmt.Errorf("scan observations: %w", err)
			}

			if quiet {
				return nil
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Accepted %d of %d observations\n", progress.Accepted, progress.Received)
			return err
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read observations from a file instead of stdin")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print a summary")

	return cmd
}
