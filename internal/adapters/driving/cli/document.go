package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

var viewCmd = &cobra.Command{
	Use:   "view [doc-id]",
	Short: "Print a document",
	Long: `Fetches a document and prints its metadata and markdown body.

The document id may be a full id or the short id from a document URL.
Viewing records the document in the local recently-viewed list.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

var starCmd = &cobra.Command{
	Use:   "star [doc-id]",
	Short: "Star a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStar,
}

var unstarCmd = &cobra.Command{
	Use:   "unstar [doc-id]",
	Short: "Remove a document star",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnstar,
}

var pinCmd = &cobra.Command{
	Use:   "pin [doc-id]",
	Short: "Pin a document to its collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runPin,
}

var unpinCmd = &cobra.Command{
	Use:   "unpin [doc-id]",
	Short: "Unpin a document from its collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpin,
}

var moveCmd = &cobra.Command{
	Use:   "move [doc-id]",
	Short: "Move a document under a new parent",
	Long: `Reassigns a document's parent within its collection.

Without --parent the document moves to the collection root.`,
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate [doc-id]",
	Short: "Duplicate a document",
	Long:  `Creates a published copy of a document in the same collection and parent.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDuplicate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [doc-id] [revision-id]",
	Short: "Restore a document revision",
	Long:  `Restores a document to the state captured by an earlier revision.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runRestore,
}

// Flags for view and move.
var (
	viewJSON   bool
	moveParent string
)

func init() {
	viewCmd.Flags().BoolVar(&viewJSON, "json", false, "output the document as JSON")
	moveCmd.Flags().StringVar(&moveParent, "parent", "", "new parent document id (empty = collection root)")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(unstarCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(restoreCmd)
}

// fetchDocument resolves an id or short id to the cached instance,
// requesting it when absent.
func fetchDocument(ctx context.Context, id string) (*domain.Document, error) {
	if documentsService == nil {
		return nil, errors.New("documents service not configured")
	}
	doc, err := documentsService.Fetch(ctx, id, domain.FetchOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return doc, nil
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := fetchDocument(ctx, args[0])
	if err != nil {
		return err
	}

	documentsService.AddRecentlyViewed(doc.ID)

	if viewJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	title := doc.Title
	if title == "" {
		title = "(untitled)"
	}
	cmd.Printf("%s\n\n", title)
	cmd.Printf("  ID:         %s\n", doc.ID)
	if doc.CollectionID != nil && *doc.CollectionID != "" {
		cmd.Printf("  Collection: %s\n", *doc.CollectionID)
	}
	if doc.CreatedBy.Name != "" {
		cmd.Printf("  Author:     %s\n", doc.CreatedBy.Name)
	}
	cmd.Printf("  Created:    %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Printf("  Updated:    %s\n", doc.UpdatedAt.Format("2006-01-02 15:04"))
	if doc.IsDraft() {
		cmd.Println("  Draft")
	}
	if doc.Starred {
		cmd.Println("  Starred")
	}
	if doc.Text != "" {
		cmd.Println()
		cmd.Println(doc.Text)
	}

	return nil
}

func runStar(cmd *cobra.Command, args []string) error {
	if documentsService == nil {
		return errors.New("documents service not configured")
	}

	docID := args[0]
	if err := documentsService.Star(context.Background(), docID); err != nil {
		return fmt.Errorf("failed to star document: %w", err)
	}

	cmd.Printf("Starred document %s.\n", docID)
	return nil
}

func runUnstar(cmd *cobra.Command, args []string) error {
	if documentsService == nil {
		return errors.New("documents service not configured")
	}

	docID := args[0]
	if err := documentsService.Unstar(context.Background(), docID); err != nil {
		return fmt.Errorf("failed to unstar document: %w", err)
	}

	cmd.Printf("Unstarred document %s.\n", docID)
	return nil
}

func runPin(cmd *cobra.Command, args []string) error {
	if documentsService == nil {
		return errors.New("documents service not configured")
	}

	docID := args[0]
	if err := documentsService.Pin(context.Background(), docID); err != nil {
		return fmt.Errorf("failed to pin document: %w", err)
	}

	cmd.Printf("Pinned document %s.\n", docID)
	return nil
}

func runUnpin(cmd *cobra.Command, args []string) error {
	if documentsService == nil {
		return errors.New("documents service not configured")
	}

	docID := args[0]
	if err := documentsService.Unpin(context.Background(), docID); err != nil {
		return fmt.Errorf("failed to unpin document: %w", err)
	}

	cmd.Printf("Unpinned document %s.\n", docID)
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := fetchDocument(ctx, args[0])
	if err != nil {
		return err
	}

	moved, err := documentsService.Move(ctx, doc, moveParent)
	if err != nil {
		return fmt.Errorf("failed to move document: %w", err)
	}

	if moveParent == "" {
		cmd.Printf("Moved %q to the collection root.\n", moved.Title)
	} else {
		cmd.Printf("Moved %q under %s.\n", moved.Title, moveParent)
	}
	return nil
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := fetchDocument(ctx, args[0])
	if err != nil {
		return err
	}

	dup, err := documentsService.Duplicate(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to duplicate document: %w", err)
	}

	cmd.Printf("Created %q (%s).\n", dup.Title, dup.ID)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := fetchDocument(ctx, args[0])
	if err != nil {
		return err
	}

	if err := documentsService.Delete(ctx, doc); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %q (%s).\n", doc.Title, doc.ID)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := fetchDocument(ctx, args[0])
	if err != nil {
		return err
	}

	revisionID := args[1]
	restored, err := documentsService.Restore(ctx, doc, revisionID)
	if err != nil {
		return fmt.Errorf("failed to restore document: %w", err)
	}

	cmd.Printf("Restored %q to revision %s.\n", restored.Title, revisionID)
	return nil
}
