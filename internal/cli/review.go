package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/database"
	"github.com/example/fideltutor/internal/review"
	sr "github.com/example/fideltutor/internal/spaced_repetition"
)

func newReviewCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review today's cards interactively",
		Long: "Shows each due card, reveals the answer on enter and asks for a rating. " +
			"Every rating is saved immediately; enter q to stop early.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			today, err := a.today()
			if err != nil {
				return err
			}

			sel := review.NewSelector(a.store.Cards, a.store.States, a.logger)
			sel.Limit = limit
			q, err := sel.Load(ctx, today)
			if err != nil {
				return fmt.Errorf("failed to load due cards: %w", err)
			}
			if len(q.Items) == 0 {
				printQueue(out, q)
				return nil
			}

			session := review.NewSession(sr.NewSM2(), a.store.States, q)
			in := bufio.NewScanner(cmd.InOrStdin())
			for {
				item, ok := session.Current()
				if !ok {
					break
				}

				_, _ = fmt.Fprintf(out, "\n[%d left] %s\n", session.Remaining(), cardFront(item.Card))
				_, _ = fmt.Fprint(out, "Press enter to reveal, q to stop: ")
				if !in.Scan() || strings.TrimSpace(in.Text()) == "q" {
					break
				}
				_, _ = fmt.Fprintf(out, "  %s\n", item.Card.Back)

				rating, quit := promptRating(in, out)
				if quit {
					break
				}
				res, err := session.Rate(ctx, rating, today)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "  next review %s (+%d XP)\n", res.NewState.DueDate, res.XPEarned)
			}

			rated := len(q.Items) - session.Remaining()
			if rated == 0 {
				_, _ = fmt.Fprintln(out, "No cards rated.")
				return nil
			}
			return finishSession(cmd, a, rated, session.XP(), today)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of cards (0: all)")
	return cmd
}

func newRateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <card-id> <again|hard|good|easy>",
		Short: "Rate a single card",
		Long:  "Applies one rating to a card, saves its new schedule and records the study day.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			today, err := a.today()
			if err != nil {
				return err
			}
			rating, err := parseRatingArg(args[1])
			if err != nil {
				return err
			}

			card, err := a.store.Cards.Get(ctx, args[0])
			if err != nil {
				return err
			}
			state, err := a.store.States.Get(ctx, args[0])
			if errors.Is(err, database.ErrNotFound) {
				return fmt.Errorf("card %q is not scheduled for review: %w", args[0], err)
			}
			if err != nil {
				return err
			}

			q := review.Queue{Items: []review.Item{{Card: *card, State: *state}}}
			session := review.NewSession(sr.NewSM2(), a.store.States, q)
			res, err := session.Rate(ctx, rating, today)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, next review %s, interval %.1f days, ease %.2f\n",
				card.ID, rating, res.NewState.DueDate, res.NewState.Interval, res.NewState.EaseFactor)
			return finishSession(cmd, a, 1, session.XP(), today)
		},
	}
}

func finishSession(cmd *cobra.Command, a *app, rated, xp int, today string) error {
	prefs, err := review.Finish(cmd.Context(), a.store.Prefs, xp, today)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Session complete: %d cards, +%d XP. Streak %d days, %d XP total.\n",
		rated, xp, prefs.StreakCount, prefs.XPTotal)
	return nil
}

// promptRating reads ratings until a valid one arrives. quit is true when
// input ends or the learner enters q.
func promptRating(in *bufio.Scanner, out io.Writer) (rating sr.Rating, quit bool) {
	for {
		_, _ = fmt.Fprint(out, "Rate [1 again, 2 hard, 3 good, 4 easy]: ")
		if !in.Scan() {
			return 0, true
		}
		text := strings.TrimSpace(in.Text())
		if text == "q" {
			return 0, true
		}
		r, err := parseRatingArg(text)
		if err == nil {
			return r, false
		}
		_, _ = fmt.Fprintf(out, "  %v\n", err)
	}
}

// parseRatingArg accepts a rating name or its number 1-4
func parseRatingArg(s string) (sr.Rating, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		r := sr.Rating(n)
		if !r.IsValid() {
			return 0, fmt.Errorf("%w: %d", sr.ErrInvalidRating, n)
		}
		return r, nil
	}
	return sr.ParseRating(s)
}
