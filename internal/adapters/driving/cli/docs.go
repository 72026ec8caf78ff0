package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var docsJSON bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage the document catalogue",
	Long:  `List and inspect the documents that have been ingested into the index.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents, newest first",
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one document record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a document from the catalogue",
	Long: `Removes the catalogue record. Already-indexed chunks stay in the
vector index until it is rebuilt.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsDelete,
}

func init() {
	docsListCmd.Flags().BoolVar(&docsJSON, "json", false, "output as JSON")
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if err := initDocStore(); err != nil {
		return err
	}

	records, err := documentStore.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if docsJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	for _, r := range records {
		title := r.Title
		if title == "" {
			title = r.ID
		}
		cmd.Printf("%s  %s (%d pages, %d chunks)\n",
			r.CreatedAt.Format("2006-01-02 15:04"), title, r.PageCount, r.ChunkCount)
		cmd.Printf("  id: %s  source: %s\n", r.ID, r.Source)
	}
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if err := initDocStore(); err != nil {
		return err
	}

	record, err := documentStore.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting document: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	if err := initDocStore(); err != nil {
		return err
	}

	if err := documentStore.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
