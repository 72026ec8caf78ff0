package driven

import "context"

// GenerationService turns a question plus retrieved context into a
// natural-language answer. This is an optional service - when nil,
// queries return ranked search results without an answer.
type GenerationService interface {
	// Generate produces an answer to the question grounded in the
	// provided context block.
	Generate(ctx context.Context, question, context string) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
