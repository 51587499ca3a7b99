// ABOUTME: Import command loads FAQ entries from CSV or YAML files
// ABOUTME: The format follows the file extension unless --file-format overrides it
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	var (
		fileFormat string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import FAQ entries from CSV or YAML",
		Long: `Import FAQ entries from a CSV file with 'question' and 'answer' columns,
or from a YAML export. Rows missing a question or an answer are skipped.`,
		Example: `  faqbot import faqs.csv
  faqbot import --replace backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if fileFormat == "" {
				fileFormat = detectFormat(path)
			}
			if !containsString([]string{"csv", "yaml"}, fileFormat) {
				return fmt.Errorf("unsupported import format %q (use csv or yaml)", fileFormat)
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var n int
			switch {
			case fileFormat == "csv" && replace:
				n, err = a.Storage.ReplaceCSV(ctx, f)
			case fileFormat == "csv":
				n, err = a.Storage.ImportCSV(ctx, f)
			case replace:
				n, err = a.Storage.ReplaceYAML(ctx, f)
			default:
				n, err = a.Storage.ImportYAML(ctx, f)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d FAQs from %s\n", n, filepath.Base(path))
			return nil
		},
	}

	cmd.Flags().StringVar(&fileFormat, "file-format", "", "File format: csv or yaml (default: from extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace existing FAQs with the file contents")

	return cmd
}

// detectFormat maps a file extension to an import/export format
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "csv"
	}
}
