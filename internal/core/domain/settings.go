package domain

import "strings"

// unknownDescription is used for unrecognised enum values.
const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingDimensions maps supported embedding model names to their
// vector dimensions. Models absent from this table are rejected at
// construction with ErrUnsupportedModel.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Sentence-transformer family (served locally via Ollama).
		"multilingual-e5-small": 384,
		"e5-small-v2":           384,
		"e5-large-v2":           1024,
		"all-minilm":            384,
		"nomic-embed-text":      768,
		"mxbai-embed-large":     1024,

		// OpenAI models.
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// IsE5Model reports whether the model belongs to the E5 family.
// E5 models expect "query: " / "passage: " instruction prefixes.
func IsE5Model(model string) bool {
	return strings.Contains(model, "e5")
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey is the API key (for OpenAI).
	APIKey string `toml:"api_key,omitempty"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// GenerationSettings holds generation backend configuration.
// An unconfigured backend means search-only queries.
type GenerationSettings struct {
	// Provider is the generation service provider.
	Provider AIProvider `toml:"provider,omitempty"`

	// Model is the generation model name.
	Model string `toml:"model,omitempty"`

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey is the API key (for OpenAI).
	APIKey string `toml:"api_key,omitempty"`
}

// IsConfigured returns true if the generation backend is set up.
func (g GenerationSettings) IsConfigured() bool {
	if !g.Provider.IsValid() {
		return false
	}
	if g.Provider.RequiresAPIKey() && g.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings holds chunking and search behaviour configuration.
type RetrievalSettings struct {
	// ChunkSize is the chunk size in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks in characters.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the default number of chunks retrieved per query.
	TopK int `toml:"top_k"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings `toml:"embedding"`

	// Generation holds generation backend settings.
	Generation GenerationSettings `toml:"generation"`

	// Retrieval holds chunking and search settings.
	Retrieval RetrievalSettings `toml:"retrieval"`

	// DataDir is the directory for the index artifacts and the
	// document catalogue. Empty means ~/.leafra/data.
	DataDir string `toml:"data_dir,omitempty"`
}

// DefaultAppSettings returns settings with sensible defaults.
// The generation backend is left unconfigured; queries then return
// ranked results without an answer.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "multilingual-e5-small",
		},
		Generation: GenerationSettings{},
		Retrieval: RetrievalSettings{
			ChunkSize:    400,
			ChunkOverlap: 100,
			TopK:         5,
		},
	}
}

// IndexPrefix returns the index path prefix for the given embedding
// model. Indexes built by different models never share artifacts.
func IndexPrefix(model string) string {
	return "rag_index_" + model
}
