// Package attribution maps chunks back to the source pages they were
// drawn from.
package attribution

import (
	"strings"
	"unicode/utf8"

	"github.com/Leafra-ai/LeafraSDK/internal/core/domain"
)

// sentenceChunkThreshold is the normalized length above which a chunk is
// matched sentence-by-sentence instead of as a whole substring.
const sentenceChunkThreshold = 50

// minSentenceLength is the minimum trimmed length for a sentence
// fragment to count as a match candidate.
const minSentenceLength = 10

// Pages returns the page numbers the chunk text is attributed to, in
// document page order.
//
// Long chunks (normalized length above 50) are split on sentence-terminal
// periods; a page is attributed when more than half of the surviving
// fragments occur in its text. Short chunks attribute to any page whose
// text contains the whole chunk. This is a containment heuristic, not
// exact provenance: duplicated content can over-attribute and reflowed
// text can under-attribute. Failure to match any page is not an error;
// the result is simply empty. A long chunk with no fragment longer than
// 10 characters also attributes to no page.
func Pages(chunkText string, pages []domain.PageText) []int {
	chunk := normalize(chunkText)
	if chunk == "" {
		return nil
	}

	var sentences []string
	if utf8.RuneCountInString(chunk) > sentenceChunkThreshold {
		sentences = splitSentences(chunk)
		if len(sentences) == 0 {
			return nil
		}
	}

	var pageNumbers []int
	for _, page := range pages {
		pageText := normalize(page.Text)

		if sentences != nil {
			matches := 0
			for _, sentence := range sentences {
				if strings.Contains(pageText, sentence) {
					matches++
				}
			}
			// Strict majority of sentences on the page.
			if matches*2 > len(sentences) {
				pageNumbers = append(pageNumbers, page.PageNumber)
			}
			continue
		}

		if strings.Contains(pageText, chunk) {
			pageNumbers = append(pageNumbers, page.PageNumber)
		}
	}

	return pageNumbers
}

// normalize collapses whitespace runs (including newlines) to single
// spaces and trims the ends, so chunk and page text compare cleanly
// despite extraction reflow.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitSentences splits on periods and keeps trimmed fragments longer
// than minSentenceLength.
func splitSentences(s string) []string {
	parts := strings.Split(s, ".")

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if utf8.RuneCountInString(trimmed) > minSentenceLength {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
