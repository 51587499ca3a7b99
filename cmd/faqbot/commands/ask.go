// ABOUTME: Ask command answers a question from the terminal
// ABOUTME: With no question argument it reads questions line by line as one session
package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/faqbot/internal/core"
	"github.com/harper/faqbot/internal/models"
	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	var (
		sessionID string
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question",
		Long: `Ask a question.

The best matching FAQ answer is returned when its similarity reaches the
threshold, otherwise the AI fallback answers. Without a question argument
each line read from stdin is asked in the same session.`,
		Example: `  faqbot ask "How do I reset my password?"
  faqbot ask --session demo --threshold 0.5 "refund policy"
  faqbot ask < questions.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threshold") && (threshold < 0 || threshold > 1) {
				return fmt.Errorf("threshold must be between 0 and 1, got %v", threshold)
			}

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = a.Engine.Threshold()
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
			}

			ask := func(query string) error {
				answer := a.Engine.AnswerWithThreshold(cmd.Context(), query, sessionID, threshold)
				return printAnswer(cmd.OutOrStdout(), answer)
			}

			if len(args) > 0 {
				return ask(strings.Join(args, " "))
			}
			return askLines(cmd.InOrStdin(), ask)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id for conversation history (default: new session)")
	cmd.Flags().Float64Var(&threshold, "threshold", core.DefaultThreshold, "Minimum similarity to answer from the FAQ corpus")

	return cmd
}

// askLines asks every non-blank line of r in order
func askLines(r io.Reader, ask func(string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := ask(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printAnswer(w io.Writer, answer models.Answer) error {
	if jsonOutput() {
		return printJSON(w, answer)
	}
	fmt.Fprintln(w, answer.Text)
	fmt.Fprintf(w, "  [%s, confidence %.2f, session %s]\n", answer.Source, answer.Confidence, answer.SessionID)
	return nil
}
