package domain

// RetrievedChunk is a context passage the backend retrieved for a query.
// Chunks arrive verbatim from the backend's context list and are held as
// the "last retrieved context": each response that carries context replaces
// the previous list, never merges with it.
type RetrievedChunk struct {
	// ID is the backend's identifier for the chunk, if any.
	ID string

	// Text is the passage content.
	Text string

	// Score is the similarity score in [0, 1].
	Score float64

	// Metadata contains arbitrary key-value pairs from the backend.
	Metadata map[string]any
}

// Filename returns the source filename from metadata, or empty if absent.
func (c RetrievedChunk) Filename() string {
	if c.Metadata == nil {
		return ""
	}
	if name, ok := c.Metadata["filename"].(string); ok {
		return name
	}
	return ""
}

// Source returns the source identifier from metadata, or empty if absent.
func (c RetrievedChunk) Source() string {
	if c.Metadata == nil {
		return ""
	}
	if src, ok := c.Metadata["source"].(string); ok {
		return src
	}
	return ""
}
