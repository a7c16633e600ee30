package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driven"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driving"
	"github.com/ragtalk-labs/ragtalk-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// genericFailure is shown when a backend error carries no usable message.
const genericFailure = "Something went wrong talking to the backend. Please try again."

// ChatService manages a single conversation.
//
// All state is guarded by a mutex: the TUI resolves backend calls on
// goroutines spawned by bubbletea commands, while the transcript is read
// from the update loop.
type ChatService struct {
	mu sync.Mutex

	backend  driven.Backend
	greeting string

	sessionID string
	messages  []domain.Message
	context   []domain.RetrievedChunk
	nextID    int
	pending   bool

	// generation invalidates in-flight requests across Clear calls.
	// A response whose generation no longer matches is dropped instead of
	// reappearing in a fresh conversation.
	generation uint64

	useRAG bool
	topK   int

	now func() time.Time
}

// NewChatService creates a conversation against the given backend.
// Settings seed the RAG toggle, top-k, and greeting; the greeting becomes
// the first transcript message.
func NewChatService(backend driven.Backend, settings domain.ChatSettings) *ChatService {
	greeting := settings.Greeting
	if greeting == "" {
		greeting = domain.DefaultGreeting
	}
	topK := settings.TopK
	if !domain.ValidTopK(topK) {
		topK = domain.DefaultTopK
	}

	s := &ChatService{
		backend:   backend,
		greeting:  greeting,
		sessionID: uuid.NewString(),
		useRAG:    settings.UseRAG,
		topK:      topK,
		now:       time.Now,
	}
	s.reset()
	return s
}

// reset rebuilds the transcript around the greeting (caller must hold lock,
// or be the constructor).
func (s *ChatService) reset() {
	s.nextID = 0
	s.messages = []domain.Message{s.newMessage(domain.RoleBot, s.greeting, "")}
	s.context = nil
	s.pending = false
}

// newMessage allocates the next session-local message (caller must hold lock).
func (s *ChatService) newMessage(role domain.Role, text, model string) domain.Message {
	m := domain.Message{
		ID:        s.nextID,
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
		Model:     model,
	}
	s.nextID++
	return m
}

// Submit validates input and appends the user message optimistically.
func (s *ChatService) Submit(input string) (domain.Message, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.Message{}, 0, domain.ErrEmptyQuery
	}
	if s.pending {
		return domain.Message{}, 0, domain.ErrRequestPending
	}

	msg := s.newMessage(domain.RoleUser, trimmed, "")
	s.messages = append(s.messages, msg)
	s.pending = true

	logger.Debug("submit session=%s id=%d rag=%t", s.sessionID, msg.ID, s.useRAG)
	return msg, s.generation, nil
}

// Ask performs the backend round trip for a submitted query.
// Exactly one request is dispatched: the RAG chat endpoint when the toggle
// is on, the direct endpoint otherwise. The bot or error message is
// appended unless the generation went stale in the meantime.
func (s *ChatService) Ask(ctx context.Context, query string, gen uint64) (domain.Message, bool) {
	s.mu.Lock()
	useRAG := s.useRAG
	topK := domain.ClampTopK(s.topK)
	backend := s.backend
	s.mu.Unlock()

	var answer *domain.ChatAnswer
	var err error

	if backend == nil {
		err = domain.ErrBackendUnavailable
	} else if useRAG {
		answer, err = backend.Chat(ctx, query, topK)
	} else {
		answer, err = backend.Query(ctx, query)
	}

	return s.resolve(gen, answer, err)
}

// resolve reconciles a backend result into the transcript.
func (s *ChatService) resolve(gen uint64, answer *domain.ChatAnswer, err error) (domain.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// The conversation was cleared while this request was in flight.
		logger.Debug("dropping stale response session=%s gen=%d current=%d", s.sessionID, gen, s.generation)
		return domain.Message{}, false
	}

	s.pending = false

	var msg domain.Message
	if err != nil {
		msg = s.newMessage(domain.RoleError, errorText(err), "")
	} else {
		msg = s.newMessage(domain.RoleBot, answer.Response, answer.Model)
		if answer.HasContext() {
			// Replace, never merge.
			s.context = answer.ContextUsed
		}
	}
	s.messages = append(s.messages, msg)
	return msg, true
}

// errorText converts a backend failure into a transcript line.
func errorText(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return genericFailure
	}
	if errors.Is(err, domain.ErrBackendUnavailable) {
		return "Backend is not configured. Set backend.base_url and try again."
	}
	return "Request failed: " + err.Error()
}

// Retrieve fetches context chunks without generating an answer.
func (s *ChatService) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, domain.ErrEmptyQuery
	}

	s.mu.Lock()
	topK := domain.ClampTopK(s.topK)
	backend := s.backend
	s.mu.Unlock()

	if backend == nil {
		return nil, domain.ErrBackendUnavailable
	}

	chunks, err := backend.Retrieve(ctx, trimmed, topK)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.context = chunks
	s.mu.Unlock()
	return chunks, nil
}

// ToggleRAG enables or disables retrieval augmentation.
func (s *ChatService) ToggleRAG(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useRAG = enabled
}

// RAGEnabled reports whether retrieval augmentation is on.
func (s *ChatService) RAGEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.useRAG
}

// SetTopK sets the number of chunks requested per RAG query.
func (s *ChatService) SetTopK(n int) error {
	if !domain.ValidTopK(n) {
		return domain.ErrInvalidTopK
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topK = n
	return nil
}

// TopK returns the configured top-k value.
func (s *ChatService) TopK() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topK
}

// Clear resets the transcript to the greeting and invalidates in-flight
// requests by bumping the generation counter. The pending gate is released
// so the fresh conversation accepts submissions immediately; if the old
// request ever resolves, its generation no longer matches and it is dropped.
func (s *ChatService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.reset()
}

// Messages returns a copy of the transcript in insertion order.
func (s *ChatService) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Context returns the last retrieved context, or nil if none.
func (s *ChatService) Context() []domain.RetrievedChunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.context == nil {
		return nil
	}
	out := make([]domain.RetrievedChunk, len(s.context))
	copy(out, s.context)
	return out
}

// Pending reports whether a request is in flight.
func (s *ChatService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SessionID identifies this conversation for logging.
func (s *ChatService) SessionID() string {
	return s.sessionID
}
