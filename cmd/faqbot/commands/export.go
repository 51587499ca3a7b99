// ABOUTME: Export command writes the FAQ corpus as CSV or YAML
// ABOUTME: Writes to stdout unless --output names a file
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var (
		output     string
		fileFormat string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the FAQ corpus",
		Long: `Export the FAQ corpus.

CSV output has a 'question,answer' header and can be imported back with
'faqbot import'. YAML output also carries ids and timestamps.`,
		Example: `  faqbot export > faqs.csv
  faqbot export -f yaml -o backup.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("file-format") && output != "" {
				fileFormat = detectFormat(output)
			}
			if !containsString([]string{"csv", "yaml"}, fileFormat) {
				return fmt.Errorf("unsupported export format %q (use csv or yaml)", fileFormat)
			}

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			switch fileFormat {
			case "yaml":
				err = a.Storage.ExportYAML(cmd.Context(), w)
			default:
				err = a.Storage.ExportCSV(cmd.Context(), w)
			}
			if err != nil {
				return err
			}

			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported FAQs to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&fileFormat, "file-format", "f", "csv", "Export format: csv or yaml")

	return cmd
}
