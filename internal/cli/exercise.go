package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/content"
	"github.com/example/fideltutor/internal/curriculum"
)

func newExerciseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "List and check grammar and dialogue exercises",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the available exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := content.Load(a.cfg.ContentDir)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(lib.Exercises))
			for id := range lib.Exercises {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				ex := lib.Exercises[id]
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-32s %-10s %s\n", id, ex.ModuleID, ex.Exercise.Kind())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check <exercise-id> <answer-json>",
		Short: "Check an answer",
		Long: "Grades a JSON answer: a list of tokens for reorder, a string for fill_blank, " +
			"an option index for multiple_choice and an object for match_pairs.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := content.Load(a.cfg.ContentDir)
			if err != nil {
				return err
			}
			ex, ok := lib.Exercises[args[0]]
			if !ok {
				return fmt.Errorf("unknown exercise %q", args[0])
			}

			if ex.ModuleID != "" {
				if unit, err := curriculum.ParseUnit(ex.ModuleID); err == nil {
					records, err := a.store.Progress.List(cmd.Context())
					if err != nil {
						return err
					}
					open, err := curriculum.IsUnlocked(unit, curriculum.FromRecords(records))
					if err != nil {
						return err
					}
					if !open {
						return fmt.Errorf("exercise %q belongs to %s, which is still locked", args[0], unit)
					}
				}
			}

			correct, err := ex.Exercise.Grade(json.RawMessage(args[1]))
			if err != nil {
				return err
			}
			if correct {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "correct")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "incorrect")
			}
			return nil
		},
	})

	return cmd
}
