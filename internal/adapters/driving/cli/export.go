package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/foliohq/folio-cli/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Export a document as markdown or HTML",
	Long: `Exports the server-rendered markdown for a document.

With --html the markdown is rendered into a standalone HTML page.

Examples:
  folio export doc-123
  folio export doc-123 --html -o report.html`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var urlCmd = &cobra.Command{
	Use:   "url [doc-id]",
	Short: "Print a document's URL",
	Long:  `Prints the document's workspace URL, optionally copying it to the clipboard.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runURL,
}

// Flags for export and url.
var (
	exportHTML   bool
	exportOutput string
	urlCopy      bool
)

func init() {
	exportCmd.Flags().BoolVar(&exportHTML, "html", false, "render the markdown as a standalone HTML page")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	urlCmd.Flags().BoolVar(&urlCopy, "copy", false, "copy the URL to the clipboard")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(urlCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := fetchDocument(ctx, args[0])
	if err != nil {
		return err
	}

	markdown, err := documentsService.Export(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}

	out := markdown
	if exportHTML {
		page, err := export.HTML(doc.Title, markdown)
		if err != nil {
			return err
		}
		out = page
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		cmd.Printf("Exported %q to %s\n", doc.Title, exportOutput)
		return nil
	}

	cmd.Print(out)
	if !strings.HasSuffix(out, "\n") {
		cmd.Println()
	}
	return nil
}

func runURL(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := fetchDocument(ctx, args[0])
	if err != nil {
		return err
	}

	target := doc.URL
	if target == "" {
		return errors.New("document has no URL")
	}

	// Resolve relative paths against the configured workspace URL
	if strings.HasPrefix(target, "/") && configStore != nil {
		if base := strings.TrimRight(configStore.GetString("api.url"), "/"); base != "" {
			target = base + target
		}
	}

	if urlCopy {
		if err := clipboard.WriteAll(target); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cmd.Printf("Copied %s to the clipboard.\n", target)
		return nil
	}

	cmd.Println(target)
	return nil
}
