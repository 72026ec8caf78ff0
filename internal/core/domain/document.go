package domain

import "time"

// PageText is the text of a single source page, as produced by an extractor.
// Page numbers are 1-based and appear in source order.
type PageText struct {
	// PageNumber is the 1-based page number in the source document.
	PageNumber int

	// Text is the extracted text of the page.
	Text string
}

// Document represents one ingested source after text extraction.
// It is immutable once created.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Source is the origin of the document (file path, URL, etc).
	Source string

	// Title is the human-readable title.
	Title string

	// Content is the full extracted text, before chunking.
	Content string

	// Pages holds the per-page text in source order.
	// May be empty for sources without page structure.
	Pages []PageText

	// Metadata contains arbitrary key-value pairs inherited by every chunk.
	Metadata map[string]any

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a bounded slice of a document's text, the unit of indexing
// and retrieval.
type Chunk struct {
	// Content is the text content of this chunk.
	Content string

	// Index is the 0-based position of the chunk within its document.
	Index int

	// Count is the total number of chunks produced from the document.
	Count int

	// PageNumbers lists the pages the chunk is attributed to, ascending.
	// Empty when attribution found no matching page.
	PageNumbers []int

	// Metadata contains the chunk's metadata: the parent document's
	// metadata extended with chunk_index, chunk_count and, when
	// attribution succeeded, page_numbers and primary_page.
	Metadata map[string]any
}

// PrimaryPage returns the first attributed page, or 0 when the chunk
// attributes to no page.
func (c Chunk) PrimaryPage() int {
	if len(c.PageNumbers) == 0 {
		return 0
	}
	return c.PageNumbers[0]
}

// DocumentRecord is the catalogue entry kept for every ingested document.
type DocumentRecord struct {
	// ID is the unique identifier for the document.
	ID string

	// Source is the origin of the document.
	Source string

	// Title is the human-readable title.
	Title string

	// PageCount is the number of extracted pages.
	PageCount int

	// ChunkCount is the number of chunks indexed from the document.
	ChunkCount int

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}
