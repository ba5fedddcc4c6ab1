package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/quiz"
)

func newQuizCmd(a *app) *cobra.Command {
	var (
		theme   string
		count   int
		reverse bool
	)

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take a multiple choice quiz over your vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			today, err := a.today()
			if err != nil {
				return err
			}

			dir := quiz.AmharicToEnglish
			if reverse {
				dir = quiz.EnglishToAmharic
			}
			questions, err := quiz.NewGenerator(a.store.Vocab, nil).Create(ctx, theme, count, dir)
			if err != nil {
				return err
			}

			in := bufio.NewScanner(cmd.InOrStdin())
			correct := 0
			asked := 0
			for i, q := range questions {
				_, _ = fmt.Fprintf(out, "\n%d/%d  %s\n", i+1, len(questions), q.Exercise.Question)
				for j, o := range q.Exercise.Options {
					_, _ = fmt.Fprintf(out, "  %d) %s\n", j+1, o)
				}
				_, _ = fmt.Fprint(out, "Answer: ")
				if !in.Scan() || strings.TrimSpace(in.Text()) == "q" {
					break
				}
				asked++

				choice, err := strconv.Atoi(strings.TrimSpace(in.Text()))
				ok := false
				if err == nil {
					ok, err = q.Exercise.Grade([]byte(strconv.Itoa(choice - 1)))
				}
				if err != nil || !ok {
					_, _ = fmt.Fprintf(out, "  no: %s\n", q.Exercise.Options[q.Exercise.CorrectIndex])
					continue
				}
				correct++
				_, _ = fmt.Fprintln(out, "  yes")
			}

			if asked == 0 {
				_, _ = fmt.Fprintln(out, "No questions answered.")
				return nil
			}
			p, err := quiz.SaveResult(ctx, a.store.Progress, theme, correct, asked, today)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Score %d/%d. Best %d%% (%s)\n", correct, asked, p.Score, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Only ask words of this theme")
	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of questions")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Ask for the Amharic word instead of the translation")
	return cmd
}
