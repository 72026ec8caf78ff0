package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest PDF documents into the index",
	Long: `Extracts text from the given PDF files, chunks and embeds it and adds
the chunks to the local vector index. The index is persisted after
every document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := initRetrieval(); err != nil {
		return err
	}

	ctx := cmd.Context()
	failures := 0

	for _, path := range args {
		doc, err := extractor.Extract(ctx, path)
		if err != nil {
			cmd.PrintErrf("Skipping %s: %v\n", path, err)
			failures++
			continue
		}

		result, err := retrievalService.Ingest(ctx, doc)
		if err != nil {
			cmd.PrintErrf("Ingesting %s failed: %v\n", path, err)
			failures++
			continue
		}

		cmd.Printf("Ingested %s: %d chunks (index size %d)\n",
			path, result.ChunkCount, result.IndexSize)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(args))
	}
	return nil
}
