// ABOUTME: FAQ command group for managing the stored question/answer corpus
// ABOUTME: list, add, update, and delete entries; every change rebuilds the index
package commands

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harper/faqbot/internal/models"
	"github.com/harper/faqbot/internal/storage"
	"github.com/harper/faqbot/internal/util"
	"github.com/spf13/cobra"
)

// NewFAQCmd creates the faq command group
func NewFAQCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faq",
		Short: "Manage FAQ entries",
	}

	cmd.AddCommand(newFAQListCmd())
	cmd.AddCommand(newFAQAddCmd())
	cmd.AddCommand(newFAQUpdateCmd())
	cmd.AddCommand(newFAQDeleteCmd())

	return cmd
}

func newFAQListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List FAQ entries in corpus order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("limit") {
				if err := validatePositiveInt(limit, "limit"); err != nil {
					return err
				}
			}

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			faqs, err := a.Storage.ListFAQs(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(faqs) > limit {
				faqs = faqs[:limit]
			}
			return printFAQs(cmd.OutOrStdout(), faqs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n entries")

	return cmd
}

func newFAQAddCmd() *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a FAQ entry",
		Example: `  faqbot faq add --question "What are your hours?" --answer "9am to 5pm, Monday to Friday."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			faq, err := a.Storage.AddFAQ(cmd.Context(), question, answer)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), faq)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added FAQ %s\n", faq.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "Question text")
	cmd.Flags().StringVar(&answer, "answer", "", "Answer text")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func newFAQUpdateCmd() *cobra.Command {
	var question, answer string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a FAQ entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if question == "" && answer == "" {
				return fmt.Errorf("nothing to update: pass --question and/or --answer")
			}

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			existing, err := a.Storage.GetFAQ(cmd.Context(), args[0])
			if err != nil {
				return notFound(args[0], err)
			}
			if question == "" {
				question = existing.Question
			}
			if answer == "" {
				answer = existing.Answer
			}

			faq, err := a.Storage.UpdateFAQ(cmd.Context(), args[0], question, answer)
			if err != nil {
				return notFound(args[0], err)
			}
			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), faq)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated FAQ %s\n", faq.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "New question text")
	cmd.Flags().StringVar(&answer, "answer", "", "New answer text")

	return cmd
}

func newFAQDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a FAQ entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Storage.DeleteFAQ(cmd.Context(), args[0]); err != nil {
				return notFound(args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted FAQ %s\n", args[0])
			return nil
		},
	}
}

func notFound(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no FAQ with id %s", id)
	}
	return err
}

func printFAQs(w io.Writer, faqs []models.FAQ) error {
	if jsonOutput() {
		return printJSON(w, faqs)
	}
	if len(faqs) == 0 {
		fmt.Fprintln(w, "No FAQs stored. Add one with 'faqbot faq add' or 'faqbot import'.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUESTION\tANSWER\tUPDATED")
	for _, f := range faqs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			f.ID, util.Truncate(f.Question, 50), util.Truncate(f.Answer, 40), formatTime(f.UpdatedAt))
	}
	return tw.Flush()
}
