// Package llm holds the prompt framing shared by the generation adapters.
package llm

import "fmt"

// BuildPrompt frames retrieved context and a user question into the
// grounded-answer prompt sent to the generation model.
func BuildPrompt(question, context string) string {
	return fmt.Sprintf("Context: %s\n\nQuestion: %s\n\nPlease answer the question based on the provided context. If the answer is not in the context, say so.\n\nAnswer:", context, question)
}
