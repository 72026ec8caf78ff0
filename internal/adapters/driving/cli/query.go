package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

var (
	queryTopK  int
	queryDebug bool
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question against the indexed documents",
	Long: `Embeds the question, retrieves the most similar chunks from the index
and, when a generation backend is configured, produces an answer
grounded in them.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from settings)")
	queryCmd.Flags().BoolVar(&queryDebug, "debug", false, "include query processing details")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := initRetrieval(); err != nil {
		return err
	}

	opts := domain.QueryOptions{
		TopK:  queryTopK,
		Debug: queryDebug,
	}

	result, err := retrievalService.Query(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}
	return outputQueryText(cmd, result)
}

func outputQueryJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, result *domain.QueryResult) error {
	if result.Answer != "" {
		cmd.Println(result.Answer)
		cmd.Println()
	}

	if len(result.Results) == 0 {
		return nil
	}

	cmd.Println("Sources:")
	for _, r := range result.Results {
		cmd.Printf("  [%d] (%.3f) %s\n", r.Rank, r.Score, snippet(r.Content, 100))
		if src, ok := r.Metadata["source"].(string); ok {
			if page, ok := r.Metadata["primary_page"].(int); ok {
				cmd.Printf("      %s, page %d\n", src, page)
			} else {
				cmd.Printf("      %s\n", src)
			}
		}
	}

	if result.Debug != nil {
		cmd.Println()
		cmd.Printf("Prepared query: %q\n", result.Debug.PreparedQuery)
		cmd.Printf("Embedding dimension: %d\n", result.Debug.Dimension)
	}

	return nil
}

// snippet truncates s to at most n runes.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
