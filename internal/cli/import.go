package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/database"
	"github.com/example/fideltutor/internal/excel"
)

func newImportCmd(a *app) *cobra.Command {
	cfg := excel.DefaultImportConfig()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import vocabulary from an .xlsx or .csv file",
		Long: "Reads rows of amharic, english, transliteration and theme, stores them as " +
			"custom vocabulary and schedules a review card for each new word.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.today()
			if err != nil {
				return err
			}
			cfg.FilePath = args[0]
			cfg.Today = today

			im := excel.NewImporter(a.store.Vocab, a.store.Cards, a.store.States, a.logger)
			res, err := im.ImportWords(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Processed %d rows: %d created, %d updated, %d skipped\n",
				res.TotalProcessed, res.Created, res.Updated, res.Skipped)
			for _, e := range res.Errors {
				_, _ = fmt.Fprintf(out, "  %s\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.SheetName, "sheet", "", "Sheet to import (default: first sheet)")
	cmd.Flags().IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "First data row, 1-based")
	return cmd
}

func newForgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <amharic>",
		Short: "Remove an imported word and its review card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			im := excel.NewImporter(a.store.Vocab, a.store.Cards, a.store.States, a.logger)
			v, err := im.Forget(cmd.Context(), args[0])
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("%q was never imported", args[0])
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", v.Amharic, v.English)
			return nil
		},
	}
}
