package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/fidel"
)

func newFidelCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "fidel",
		Short:       "Ethiopic keyboard helpers",
		Annotations: map[string]string{offlineAnnotation: ""},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "orders <romanization>",
		Short: "Show the seven vowel orders of a consonant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := fidel.KeyByRomanization(args[0])
			if !ok {
				return fmt.Errorf("unknown consonant %q", args[0])
			}
			chars := make([]string, 0, 7)
			for order := 1; order <= 7; order++ {
				c, err := fidel.VowelOrderChar(key, order)
				if err != nil {
					return err
				}
				chars = append(chars, c)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key.DisplayName(), strings.Join(chars, " "))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check <typed> <expected>",
		Short: "Compare typed fidel with the expected text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := fidel.ValidateInput(args[0], args[1])
			if res.Correct {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "correct")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "incorrect at positions %v\n", res.WrongPositions)
			return nil
		},
	})

	return cmd
}
