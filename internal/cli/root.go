// Package cli implements the fideltutor command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/config"
	"github.com/example/fideltutor/internal/database"
	sr "github.com/example/fideltutor/internal/spaced_repetition"
	"github.com/example/fideltutor/pkg/models"
)

// app carries what every command needs once the root command has run its
// setup
type app struct {
	now      func() time.Time
	todayArg string

	cfg    *config.Config
	logger *slog.Logger
	store  *database.Store
}

// today is the study date: the --today flag if given, else the local date
func (a *app) today() (string, error) {
	if a.todayArg == "" {
		return sr.Today(a.now), nil
	}
	if _, err := sr.ParseDate(a.todayArg); err != nil {
		return "", err
	}
	return a.todayArg, nil
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger()

	db, err := database.Connect(cmd.Context(), cfg.Database())
	if err != nil {
		return err
	}
	a.store = database.NewStore(db)
	a.logger.Debug("record store ready", "driver", cfg.Database().Driver)
	return nil
}

// offlineAnnotation marks commands that run without config or storage
const offlineAnnotation = "offline"

func offline(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[offlineAnnotation]; ok {
			return true
		}
	}
	return false
}

func (a *app) teardown() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// NewRootCommand builds the command tree. now is the clock used for the
// study date when --today is not given.
func NewRootCommand(now func() time.Time) *cobra.Command {
	if now == nil {
		now = time.Now
	}
	a := &app{now: now}

	root := &cobra.Command{
		Use:   "fideltutor",
		Short: "Amharic study companion",
		Long: "fideltutor schedules vocabulary reviews with spaced repetition, grades fidel " +
			"handwriting against reference strokes and tracks curriculum progress.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if offline(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.teardown()
		},
	}
	root.PersistentFlags().StringVar(&a.todayArg, "today", "", "Study date as YYYY-MM-DD (default: local date; remind always uses the real clock)")

	root.AddCommand(
		newImportCmd(a),
		newForgetCmd(a),
		newDueCmd(a),
		newReviewCmd(a),
		newRateCmd(a),
		newTraceCmd(a),
		newHintCmd(a),
		newUnlockCmd(a),
		newProgressCmd(a),
		newExerciseCmd(a),
		newQuizCmd(a),
		newFidelCmd(a),
		newRemindCmd(a),
	)
	return root
}

// Execute runs the command tree against the real clock
func Execute(ctx context.Context) error {
	return NewRootCommand(time.Now).ExecuteContext(ctx)
}

// cardFront is the prompt side of a card as shown in the terminal
func cardFront(c models.Card) string {
	if c.ShowFidel() {
		return fmt.Sprintf("%s (%s)", *c.FrontFidel, c.FrontRoman)
	}
	return c.FrontRoman
}
