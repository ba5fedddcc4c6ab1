package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/curriculum"
	"github.com/example/fideltutor/pkg/models"
)

func newUnlockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Show which curriculum units are open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.store.Progress.List(cmd.Context())
			if err != nil {
				return err
			}

			lookup := curriculum.FromRecords(records)
			flags := curriculum.Unlocks(lookup)
			out := cmd.OutOrStdout()
			for _, u := range curriculum.Order {
				state := "locked"
				if flags[u] {
					state = "unlocked"
				}
				status := "-"
				if p, ok := lookup(string(u)); ok {
					status = string(p.Status)
				}
				_, _ = fmt.Fprintf(out, "%-10s %-9s %s\n", u, state, status)
			}

			pct, err := curriculum.FidelUnlockPercentage(curriculum.UnlockedCharacters(records), a.cfg.FidelTotalChars)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "fidel characters unlocked: %.1f%%\n", pct)
			return nil
		},
	}
}

func newProgressCmd(a *app) *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "progress <module-id> <locked|in_progress|complete>",
		Short: "Set the progress of a module",
		Long: "Records the status of a curriculum unit (fidel, vocab, grammar, dialogue) or of " +
			"any finer module such as a lesson. Completing a unit opens the next one.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.today()
			if err != nil {
				return err
			}

			status := models.ProgressStatus(args[1])
			switch status {
			case models.StatusLocked, models.StatusInProgress, models.StatusComplete:
			default:
				return fmt.Errorf("unknown status %q", args[1])
			}

			p := &models.Progress{ModuleID: args[0], Status: status, Score: score}
			if status == models.StatusComplete {
				day := today
				p.CompletedAt = &day
			}
			if err := a.store.Progress.Put(cmd.Context(), p); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p.ModuleID, p.Status)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Score to record")
	return cmd
}
