package domain

// ChatAnswer is the backend's reply to a chat or direct query request.
type ChatAnswer struct {
	// Query echoes the question that was asked.
	Query string

	// Response is the answer text.
	Response string

	// Model is the language model that produced the answer, if reported.
	Model string

	// ContextUsed is the retrieved context the answer was grounded on.
	// Empty for direct (no-RAG) queries.
	ContextUsed []RetrievedChunk
}

// HasContext returns true if the answer carried retrieved context.
func (a ChatAnswer) HasContext() bool {
	return len(a.ContextUsed) > 0
}

// BackendHealth is the backend's liveness report.
type BackendHealth struct {
	// Status is the reported status string, typically "ok".
	Status string

	// Model is the configured language model, if reported.
	Model string
}

// OK returns true if the backend reports itself healthy.
func (h BackendHealth) OK() bool {
	return h.Status == "ok"
}
