package driven

import (
	"context"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

// Backend is the remote RAG service the client talks to.
// Each call is a single request/response exchange; there is no streaming,
// no authentication, and no retry below this interface.
//
// Implementations may include:
//   - HTTP adapter against the FastAPI backend
//   - In-memory fake for tests
type Backend interface {
	// Chat asks a question with retrieval-augmented generation.
	// topK bounds how many context chunks the backend retrieves.
	Chat(ctx context.Context, query string, topK int) (*domain.ChatAnswer, error)

	// Query asks a question without retrieval. Top-k is never transmitted.
	Query(ctx context.Context, query string) (*domain.ChatAnswer, error)

	// Retrieve returns context chunks for a query without generating an answer.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error)

	// Health probes backend liveness.
	Health(ctx context.Context) (*domain.BackendHealth, error)
}
