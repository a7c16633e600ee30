package driving

import (
	"context"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

// ChatService manages a single conversation with the backend.
//
// The conversation accepts one submission at a time: Submit gates on a
// pending flag and hands back a generation token, Ask performs the backend
// round trip and reconciles the result. Results that resolve after Clear
// was called (a stale generation) are discarded.
type ChatService interface {
	// Submit validates input and appends the user message optimistically,
	// before any network activity. It returns the appended message and the
	// generation token to pass to Ask.
	//
	// Returns domain.ErrEmptyQuery for whitespace-only input and
	// domain.ErrRequestPending while a prior request is unresolved.
	Submit(input string) (domain.Message, uint64, error)

	// Ask performs the backend call for a submitted query and appends the
	// bot or error message. The returned bool is false when the result was
	// stale and discarded.
	Ask(ctx context.Context, query string, gen uint64) (domain.Message, bool)

	// Retrieve fetches context chunks for a query without generating an
	// answer. On success the stored context is replaced.
	Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error)

	// ToggleRAG enables or disables retrieval augmentation for future
	// submissions. Past messages are unaffected.
	ToggleRAG(enabled bool)

	// RAGEnabled reports whether retrieval augmentation is on.
	RAGEnabled() bool

	// SetTopK sets the number of chunks requested per RAG query.
	// Values outside [domain.MinTopK, domain.MaxTopK] are rejected with
	// domain.ErrInvalidTopK.
	SetTopK(n int) error

	// TopK returns the configured top-k value.
	TopK() int

	// Clear resets the transcript to a single greeting message, discards
	// stored context, and invalidates any in-flight request.
	Clear()

	// Messages returns the transcript in insertion order.
	Messages() []domain.Message

	// Context returns the last retrieved context, or nil if none.
	Context() []domain.RetrievedChunk

	// Pending reports whether a request is in flight.
	Pending() bool

	// SessionID identifies this conversation for logging.
	SessionID() string
}
