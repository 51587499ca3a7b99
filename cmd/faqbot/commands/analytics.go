// ABOUTME: Analytics command summarizing logged chats and feedback
// ABOUTME: Shows totals, FAQ vs AI usage, most asked queries, and ratings
package commands

import (
	"fmt"
	"io"

	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/util"
	"github.com/spf13/cobra"
)

// NewAnalyticsCmd creates the analytics command
func NewAnalyticsCmd() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show usage analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("recent") {
				if err := validatePositiveInt(recent, "recent"); err != nil {
					return err
				}
			}

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.Storage.Analytics(cmd.Context())
			if err != nil {
				return err
			}
			var logs []models.ChatLog
			if recent > 0 {
				if logs, err = a.Storage.ChatLogs(cmd.Context(), recent); err != nil {
					return err
				}
			}

			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"analytics": stats,
					"recent":    logs,
				})
			}
			printAnalytics(cmd.OutOrStdout(), stats)
			printRecent(cmd.OutOrStdout(), logs)
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 0, "Also show the n most recent chats")

	return cmd
}

func printAnalytics(w io.Writer, a *models.Analytics) {
	fmt.Fprintf(w, "Total chats:       %d\n", a.TotalChats)
	fmt.Fprintf(w, "Answered from FAQ: %d\n", a.FAQUsage)
	fmt.Fprintf(w, "AI fallback:       %d\n", a.AIFallbackUsage)
	fmt.Fprintf(w, "Avg confidence:    %.2f\n", a.AvgConfidence)
	fmt.Fprintf(w, "Feedback:          %d positive, %d negative\n", a.PositiveRatings, a.NegativeRatings)

	if len(a.MostAsked) == 0 {
		return
	}
	fmt.Fprintln(w, "\nMost asked:")
	for i, q := range a.MostAsked {
		fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, util.Truncate(q.Query, 60), q.Count)
	}
}

func printRecent(w io.Writer, logs []models.ChatLog) {
	if len(logs) == 0 {
		return
	}
	fmt.Fprintln(w, "\nRecent chats:")
	for _, l := range logs {
		fmt.Fprintf(w, "  %s  [%s %.2f] %s\n", formatTime(l.Timestamp), l.Source, l.Confidence, util.Truncate(l.Query, 60))
	}
}
