package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// Flags for list.
var (
	listOffset     int
	listLimit      int
	listSort       string
	listDirection  string
	listCollection string
	listViewed     bool
	listStarred    bool
	listDrafts     bool
	listPinned     bool
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspace documents",
	Long: `Lists documents from the workspace and merges them into the local cache.

By default the general listing is fetched. The page flags select one of
the named listings instead:

  --viewed    documents in recently-viewed order
  --starred   documents you starred
  --drafts    your unpublished drafts
  --pinned    documents pinned in a collection (requires --collection)

Examples:
  folio list --limit 20
  folio list --collection col-123 --sort title --direction asc
  folio list --pinned --collection col-123
  folio list --viewed --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "number of results to skip")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 25, "maximum number of results")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort field (title, createdAt, updatedAt, publishedAt)")
	listCmd.Flags().StringVar(&listDirection, "direction", "", "sort direction (asc, desc)")
	listCmd.Flags().StringVarP(&listCollection, "collection", "c", "", "filter to a collection")
	listCmd.Flags().BoolVar(&listViewed, "viewed", false, "list recently viewed documents")
	listCmd.Flags().BoolVar(&listStarred, "starred", false, "list starred documents")
	listCmd.Flags().BoolVar(&listDrafts, "drafts", false, "list your drafts")
	listCmd.Flags().BoolVar(&listPinned, "pinned", false, "list documents pinned in a collection")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output documents as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if documentsService == nil {
		return errors.New("documents service not configured")
	}

	pages := 0
	for _, f := range []bool{listViewed, listStarred, listDrafts, listPinned} {
		if f {
			pages++
		}
	}
	if pages > 1 {
		return errors.New("--viewed, --starred, --drafts and --pinned are mutually exclusive")
	}
	if listPinned && listCollection == "" {
		return errors.New("--pinned requires --collection")
	}

	opts := domain.ListOptions{
		Offset:       listOffset,
		Limit:        listLimit,
		Sort:         listSort,
		CollectionID: listCollection,
	}
	switch strings.ToLower(listDirection) {
	case "":
	case "asc":
		opts.Direction = domain.DirectionAsc
	case "desc":
		opts.Direction = domain.DirectionDesc
	default:
		return fmt.Errorf("invalid direction: %s", listDirection)
	}

	ctx := context.Background()

	var (
		docs []*domain.Document
		err  error
	)
	switch {
	case listViewed:
		docs, err = documentsService.FetchRecentlyViewed(ctx, opts)
	case listStarred:
		docs, err = documentsService.FetchStarred(ctx, opts)
	case listDrafts:
		docs, err = documentsService.FetchDrafts(ctx, opts)
	case listPinned:
		docs, err = documentsService.FetchPinned(ctx, listCollection)
	default:
		docs, err = documentsService.FetchPage(ctx, domain.PageList, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if listJSON {
		return outputDocumentsJSON(cmd, docs)
	}
	return outputDocumentsTable(cmd, docs)
}

func outputDocumentsJSON(cmd *cobra.Command, docs []*domain.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDocumentsTable(cmd *cobra.Command, docs []*domain.Document) error {
	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		title := docs[i].Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("  %s\n", title)
		cmd.Printf("    ID: %s\n", docs[i].ID)
		if docs[i].CollectionID != nil && *docs[i].CollectionID != "" {
			cmd.Printf("    Collection: %s\n", *docs[i].CollectionID)
		}
		cmd.Printf("    Updated: %s\n", docs[i].UpdatedAt.Format("2006-01-02 15:04"))
		if docs[i].IsDraft() {
			cmd.Println("    Draft")
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}
