// Package cli provides the cobra command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Leafra-ai/LeafraSDK/internal/adapters/driven/ai"
	configfile "github.com/Leafra-ai/LeafraSDK/internal/adapters/driven/config/file"
	pdfextract "github.com/Leafra-ai/LeafraSDK/internal/adapters/driven/extract/pdf"
	"github.com/Leafra-ai/LeafraSDK/internal/adapters/driven/index/flat"
	"github.com/Leafra-ai/LeafraSDK/internal/adapters/driven/storage/sqlite"
	"github.com/Leafra-ai/LeafraSDK/internal/chunker"
	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driven"
	"github.com/Leafra-ai/LeafraSDK/internal/core/ports/driving"
	"github.com/Leafra-ai/LeafraSDK/internal/core/services"
	"github.com/Leafra-ai/LeafraSDK/internal/logger"
)

// version is the CLI version, overridable at build time via ldflags.
var version = "0.1.0"

// Persistent flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Wired services. Tests inject mocks here; commands that need the
// retrieval stack call initRetrieval first.
var (
	retrievalService driving.RetrievalService
	documentStore    driven.DocumentStore
	extractor        driven.Extractor
	appSettings      domain.AppSettings
	settingsPath     string
)

var rootCmd = &cobra.Command{
	Use:   "leafra",
	Short: "Local retrieval-augmented search over your documents",
	Long: `Leafra ingests PDF documents into a local vector index and answers
questions against them. Embeddings come from Ollama or OpenAI; answers
are generated by an optional LLM backend.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.leafra)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.leafra/data)")
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// loadSettings reads the persisted settings, applying flag overrides.
func loadSettings() (domain.AppSettings, error) {
	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("opening config store: %w", err)
	}
	settingsPath = store.Path()

	settings, err := store.Load()
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("loading settings: %w", err)
	}

	if dataDir != "" {
		settings.DataDir = dataDir
	}
	if settings.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return domain.AppSettings{}, fmt.Errorf("getting home directory: %w", err)
		}
		settings.DataDir = filepath.Join(home, ".leafra", "data")
	}

	return settings, nil
}

// initRetrieval wires the retrieval stack from the persisted settings.
// Already-injected services (tests) are left untouched.
func initRetrieval() error {
	if retrievalService != nil {
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	appSettings = settings

	logger.Section("Service Initialisation")
	logger.Debug("Config: %s", settingsPath)
	logger.Debug("Data directory: %s", settings.DataDir)

	embedder, err := ai.CreateAndValidateEmbeddingService(settings.Embedding)
	if err != nil {
		return err
	}
	logger.Info("Embedding: %s via %s", embedder.ModelName(), settings.Embedding.Provider)

	// A broken generation backend degrades to search-only queries.
	generator, err := ai.CreateAndValidateGenerationService(settings.Generation)
	if err != nil {
		logger.Warn("Generation backend unavailable, queries return results only: %v", err)
		generator = nil
	}
	if generator != nil {
		logger.Info("Generation: %s via %s", generator.ModelName(), settings.Generation.Provider)
	}

	index, err := flat.New(embedder.Dimensions())
	if err != nil {
		embedder.Close()
		return fmt.Errorf("creating index: %w", err)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		embedder.Close()
		return fmt.Errorf("opening document store: %w", err)
	}
	documentStore = store

	svc, err := services.NewRetrievalService(services.RetrievalConfig{
		Embedder:  embedder,
		Generator: generator,
		Index:     index,
		DocStore:  store,
		Chunker: chunker.New(
			chunker.WithChunkSize(settings.Retrieval.ChunkSize),
			chunker.WithOverlap(settings.Retrieval.ChunkOverlap),
		),
		IndexPath: filepath.Join(settings.DataDir, domain.IndexPrefix(settings.Embedding.Model)),
		TopK:      settings.Retrieval.TopK,
	})
	if err != nil {
		embedder.Close()
		store.Close()
		return fmt.Errorf("creating retrieval service: %w", err)
	}

	retrievalService = svc
	extractor = pdfextract.NewExtractor()
	return nil
}

// initDocStore wires only the document catalogue, for commands that
// don't need the embedding stack.
func initDocStore() error {
	if documentStore != nil {
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	appSettings = settings

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	documentStore = store
	return nil
}

// closeServices releases the wired services, if any. The retrieval
// service owns the stores it was built with.
func closeServices() {
	if retrievalService != nil {
		if err := retrievalService.Close(); err != nil {
			logger.Warn("Closing services: %v", err)
		}
		retrievalService = nil
		documentStore = nil
		return
	}
	if documentStore != nil {
		if err := documentStore.Close(); err != nil {
			logger.Warn("Closing document store: %v", err)
		}
		documentStore = nil
	}
}
