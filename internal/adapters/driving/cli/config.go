package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/Leafra-ai/LeafraSDK/internal/adapters/driven/config/file"
	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long:  `View and configure embedding, generation and retrieval settings.`,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a settings value",
	Long: `Set one settings value and persist it.

Keys:
  embedding.provider     ollama or openai
  embedding.model        embedding model name
  embedding.base_url     embedding API endpoint
  embedding.api_key      embedding API key
  generation.provider    ollama or openai
  generation.model       generation model name
  generation.base_url    generation API endpoint
  generation.api_key     generation API key
  retrieval.chunk_size   chunk size in characters
  retrieval.chunk_overlap overlap in characters
  retrieval.top_k        default retrieval depth
  data_dir               data directory`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return err
	}

	settings, err := store.Load()
	if err != nil {
		return err
	}

	cmd.Printf("Settings file: %s\n\n", store.Path())

	cmd.Println("[embedding]")
	cmd.Printf("  provider: %s\n", settings.Embedding.Provider)
	cmd.Printf("  model:    %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  base_url: %s\n", settings.Embedding.BaseURL)
	}
	cmd.Printf("  api_key:  %s\n", maskKey(settings.Embedding.APIKey))

	cmd.Println("[generation]")
	if settings.Generation.IsConfigured() {
		cmd.Printf("  provider: %s\n", settings.Generation.Provider)
		cmd.Printf("  model:    %s\n", settings.Generation.Model)
		if settings.Generation.BaseURL != "" {
			cmd.Printf("  base_url: %s\n", settings.Generation.BaseURL)
		}
		cmd.Printf("  api_key:  %s\n", maskKey(settings.Generation.APIKey))
	} else {
		cmd.Println("  not configured (queries return results only)")
	}

	cmd.Println("[retrieval]")
	cmd.Printf("  chunk_size:    %d\n", settings.Retrieval.ChunkSize)
	cmd.Printf("  chunk_overlap: %d\n", settings.Retrieval.ChunkOverlap)
	cmd.Printf("  top_k:         %d\n", settings.Retrieval.TopK)

	if settings.DataDir != "" {
		cmd.Printf("\ndata_dir: %s\n", settings.DataDir)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return err
	}

	settings, err := store.Load()
	if err != nil {
		return err
	}

	if err := applySetting(&settings, key, value); err != nil {
		return err
	}

	if err := store.Save(settings); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

// applySetting updates one settings field addressed by a dotted key.
func applySetting(settings *domain.AppSettings, key, value string) error {
	switch key {
	case "embedding.provider":
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("unknown provider %q", value)
		}
		settings.Embedding.Provider = provider
	case "embedding.model":
		settings.Embedding.Model = value
	case "embedding.base_url":
		settings.Embedding.BaseURL = value
	case "embedding.api_key":
		settings.Embedding.APIKey = value
	case "generation.provider":
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("unknown provider %q", value)
		}
		settings.Generation.Provider = provider
	case "generation.model":
		settings.Generation.Model = value
	case "generation.base_url":
		settings.Generation.BaseURL = value
	case "generation.api_key":
		settings.Generation.APIKey = value
	case "retrieval.chunk_size":
		return setIntField(&settings.Retrieval.ChunkSize, key, value)
	case "retrieval.chunk_overlap":
		return setIntField(&settings.Retrieval.ChunkOverlap, key, value)
	case "retrieval.top_k":
		return setIntField(&settings.Retrieval.TopK, key, value)
	case "data_dir":
		settings.DataDir = value
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
	return nil
}

func setIntField(field *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("%s must be a non-negative integer", key)
	}
	*field = n
	return nil
}

// maskKey hides all but the tail of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
