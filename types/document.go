package types

// Section is a labeled block of text produced by the document parser.
// The label records where the block came from, e.g. "Page 2 – Table".
type Section struct {
	Label    string // Origin label, rendered into the indexed text
	Text     string // Extracted content
	Position int    // Zero-based order within the document
}

// String renders the section the way it is chunked and indexed,
// with the label on its own line above the content.
func (s Section) String() string {
	return "[" + s.Label + "]\n" + s.Text
}

// Chunk is one overlapping slice of a section, ready for embedding.
type Chunk struct {
	Text       string // The actual text content
	DocID      string // Document id, assigned by the index store
	Filename   string // Original upload filename
	ChunkIndex int    // Zero-based position across the whole document
}

// RetrievalResult is a chunk returned from a similarity search.
type RetrievalResult struct {
	Text       string  // Chunk content
	Score      float64 // Cosine similarity, 1.0 - distance, unrounded
	ChunkIndex int     // Position of the chunk in the document
}

// ChunkerServiceConfig contains configuration options for text chunking
type ChunkerServiceConfig struct {
	ChunkSize    int // Maximum size for text chunks
	ChunkOverlap int // Size of overlap between chunks
}

// RAGServiceConfig contains configuration options for retrieval
type RAGServiceConfig struct {
	TopK                int     // Number of chunks retrieved per question
	SimilarityThreshold float64 // Minimum best score for an LLM answer
}
