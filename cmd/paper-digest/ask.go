package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/qa"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a question from the cached papers",
	Long: `Ask answers a question using the most recently cached papers as context.
Run fetch (or load / in the web interface) first to populate the cache.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return errors.New("question is required")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ex, err := a.digest.Ask(cmd.Context(), question)
		if errors.Is(err, qa.ErrNoContext) {
			fmt.Fprintln(cmd.OutOrStdout(), qa.Placeholder)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ex.Answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
