package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// Flags for search.
var (
	searchOffset int
	searchLimit  int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search workspace documents",
	Long: `Performs a full-text search across the workspace.

Results are merged into a per-query cache, so fetching a later page with
--offset keeps the earlier pages browsable in the TUI.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "absolute position of the page's first result")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if documentsService == nil {
		return errors.New("documents service not configured")
	}

	ctx := context.Background()
	opts := domain.SearchOptions{
		Offset: searchOffset,
		Limit:  searchLimit,
	}

	results, err := documentsService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := ""
		id := ""
		if results[i].Document != nil {
			title = results[i].Document.Title
			id = results[i].Document.ID
		}
		if title == "" {
			title = id
		}

		cmd.Printf("  [%d] %s (%.2f)\n", searchOffset+i+1, title, results[i].Ranking)
		if id != "" {
			cmd.Printf("      ID: %s\n", id)
		}
		if results[i].Context != "" {
			cmd.Printf("      %s\n", results[i].Context)
		}
		cmd.Println()
	}

	return nil
}
