package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/review"
	sr "github.com/example/fideltutor/internal/spaced_repetition"
)

func newDueCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List the cards due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today, err := a.today()
			if err != nil {
				return err
			}

			sel := review.NewSelector(a.store.Cards, a.store.States, a.logger)
			sel.Limit = limit
			q, err := sel.Load(cmd.Context(), today)
			if err != nil {
				return fmt.Errorf("failed to load due cards: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			printQueue(cmd.OutOrStdout(), q)

			all, err := a.store.States.List(cmd.Context())
			if err != nil {
				return err
			}
			engine := sr.NewSM2()
			mastered := 0
			for _, s := range all {
				if engine.IsMastered(s) {
					mastered++
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d cards mastered\n", mastered, len(all))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of cards (0: all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the queue as JSON")
	return cmd
}

func printQueue(out io.Writer, q review.Queue) {
	if len(q.Items) == 0 {
		if q.NextDueDate != "" {
			_, _ = fmt.Fprintf(out, "Nothing due today. Next review on %s\n", q.NextDueDate)
		} else {
			_, _ = fmt.Fprintln(out, "Nothing due today.")
		}
		return
	}

	_, _ = fmt.Fprintf(out, "%d cards due:\n", len(q.Items))
	for _, it := range q.Items {
		_, _ = fmt.Fprintf(out, "  %-36s %-28s reps %d, ease %.2f\n",
			it.Card.ID, cardFront(it.Card), it.State.Reps, it.State.EaseFactor)
	}
}
