package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/content"
	"github.com/example/fideltutor/internal/curriculum"
	"github.com/example/fideltutor/internal/database"
	"github.com/example/fideltutor/internal/tracing"
	"github.com/example/fideltutor/pkg/models"
)

func newTraceCmd(a *app) *cobra.Command {
	var (
		width, height float64
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "trace <character> <strokes.json>",
		Short: "Grade a traced fidel character",
		Long: "Compares strokes drawn on a canvas, given as a JSON list of point lists in " +
			"pixels, with the reference strokes of the character. The character may be " +
			"given as the glyph or its romanization.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.today()
			if err != nil {
				return err
			}

			lib, err := content.Load(a.cfg.ContentDir)
			if err != nil {
				return err
			}
			char, ok := lib.Character(args[0])
			if !ok {
				return fmt.Errorf("no reference strokes for %q in %s", args[0], a.cfg.ContentDir)
			}

			raw, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read strokes: %w", err)
			}
			var strokes []tracing.Stroke
			if err := json.Unmarshal(raw, &strokes); err != nil {
				return fmt.Errorf("failed to decode strokes: %w", err)
			}
			for i, st := range strokes {
				if tracing.IsDegenerate(st) {
					return fmt.Errorf("%w: stroke %d, try again", tracing.ErrDegenerateStroke, i+1)
				}
			}

			res, err := tracing.CompareCharacter(strokes, char.Strokes, width, height)
			if err != nil {
				return err
			}
			if err := recordTrace(cmd, a, char.Character, res, today); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			for i, s := range res.Strokes {
				mark := "✗"
				if s.IsCorrect {
					mark = "✓"
				}
				_, _ = fmt.Fprintf(out, "stroke %d: %s score %.2f (distance %.3f)\n", i+1, mark, s.Score, s.HausdorffDistance)
			}
			verdict := "try again"
			if res.AllCorrect {
				verdict = "correct"
			}
			_, _ = fmt.Fprintf(out, "%s: %s, overall %.0f%%\n", char.Character, verdict, res.OverallScore*100)
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 300, "Canvas width in pixels")
	cmd.Flags().Float64Var(&height, "height", 300, "Canvas height in pixels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newHintCmd(a *app) *cobra.Command {
	var width, height, progress float64

	cmd := &cobra.Command{
		Use:   "hint <character> <stroke>",
		Short: "Show where a stroke of a character passes",
		Long: "Prints the canvas point a fraction --progress of the way along a reference " +
			"stroke, where a tracing canvas places its hint marker. Strokes are numbered from 1.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := content.Load(a.cfg.ContentDir)
			if err != nil {
				return err
			}
			char, ok := lib.Character(args[0])
			if !ok {
				return fmt.Errorf("no reference strokes for %q in %s", args[0], a.cfg.ContentDir)
			}

			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > len(char.Strokes) {
				return fmt.Errorf("stroke must be a number from 1 to %d, got %q", len(char.Strokes), args[1])
			}

			ref := char.Strokes[n-1].Points
			at := tracing.Denormalize(tracing.Stroke{tracing.PointAtProgress(ref, progress)}, width, height)[0]
			start := tracing.Denormalize(ref[:1], width, height)[0]
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s stroke %d of %d: starts at (%.0f, %.0f), hint at (%.0f, %.0f)\n",
				char.Character, n, len(char.Strokes), start.X, start.Y, at.X, at.Y)
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 300, "Canvas width in pixels")
	cmd.Flags().Float64Var(&height, "height", 300, "Canvas height in pixels")
	cmd.Flags().Float64Var(&progress, "progress", 0.5, "Fraction of the stroke, 0 to 1")
	return cmd
}

// recordTrace stores the attempt in the character's progress record. A
// correct trace completes the character; any attempt unlocks it. The best
// score is kept.
func recordTrace(cmd *cobra.Command, a *app, character string, res tracing.TracingResult, today string) error {
	ctx := cmd.Context()
	id := curriculum.CharacterModuleID(character)

	p, err := a.store.Progress.Get(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		p = &models.Progress{ModuleID: id, Status: models.StatusLocked}
	} else if err != nil {
		return err
	}

	score := int(math.Round(res.OverallScore * 100))
	if score > p.Score {
		p.Score = score
	}
	switch {
	case res.AllCorrect && p.Status != models.StatusComplete:
		day := today
		p.Status = models.StatusComplete
		p.CompletedAt = &day
	case p.Status == models.StatusLocked:
		p.Status = models.StatusInProgress
	}
	return a.store.Progress.Put(ctx, p)
}
