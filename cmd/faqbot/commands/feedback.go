// ABOUTME: Feedback command records a thumbs up or down for a query
// ABOUTME: Ratings appear in analytics next to the chat log summary and can be listed
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/util"
	"github.com/spf13/cobra"
)

// NewFeedbackCmd creates the feedback command
func NewFeedbackCmd() *cobra.Command {
	var positive, negative, list bool

	cmd := &cobra.Command{
		Use:   "feedback <query>",
		Short: "Rate the answer given to a query",
		Example: `  faqbot feedback --up "How do I reset my password?"
  faqbot feedback --down "shipping to canada"
  faqbot feedback --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list && !positive && !negative {
				return fmt.Errorf("pass --up or --down")
			}

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if list {
				all, err := a.Storage.Feedback(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return printJSON(cmd.OutOrStdout(), all)
				}
				printFeedback(cmd.OutOrStdout(), all)
				return nil
			}

			fb, err := a.Storage.AddFeedback(cmd.Context(), strings.Join(args, " "), positive)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), fb)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Feedback recorded")
			return nil
		},
	}

	cmd.Flags().BoolVar(&positive, "up", false, "The answer was helpful")
	cmd.Flags().BoolVar(&negative, "down", false, "The answer was not helpful")
	cmd.Flags().BoolVar(&list, "list", false, "List recorded feedback")
	cmd.MarkFlagsMutuallyExclusive("up", "down", "list")

	return cmd
}

func printFeedback(w io.Writer, all []models.Feedback) {
	if len(all) == 0 {
		fmt.Fprintln(w, "No feedback recorded")
		return
	}
	for _, fb := range all {
		rating := "down"
		if fb.IsPositive {
			rating = "up"
		}
		fmt.Fprintf(w, "  %-10s %-4s %s\n", formatTime(fb.Timestamp), rating, util.Truncate(fb.Query, 60))
	}
}
