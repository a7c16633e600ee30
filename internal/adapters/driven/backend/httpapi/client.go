// Package httpapi provides the Backend adapter for the HTTP RAG service.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driven"
	"github.com/ragtalk-labs/ragtalk-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend base address (default: http://localhost:8000).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to the RAG backend over HTTP.
// Every operation is a single request/response exchange with no
// authentication, no retries, and no streaming.
type Client struct {
	client  *http.Client
	baseURL string
}

// chatRequest is the backend's chat request format, shared by /chat
// and /retrieve. TopK is omitted for direct queries.
type chatRequest struct {
	Query  string `json:"query"`
	UseRAG bool   `json:"use_rag,omitempty"`
	TopK   int    `json:"top_k,omitempty"`
}

// chunkPayload is one retrieved context entry on the wire.
type chunkPayload struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// chatResponse is the /chat and /query-without-rag response format.
type chatResponse struct {
	Query       string         `json:"query"`
	Response    string         `json:"response"`
	Model       string         `json:"model"`
	ContextUsed []chunkPayload `json:"context_used"`
}

// retrieveResponse is the /retrieve response format.
type retrieveResponse struct {
	Query     string         `json:"query"`
	Documents []chunkPayload `json:"documents"`
	Count     int            `json:"count"`
}

// healthResponse is the /health response format.
type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// errorResponse is the backend's error body shape.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Chat asks a question with retrieval-augmented generation.
func (c *Client) Chat(ctx context.Context, query string, topK int) (*domain.ChatAnswer, error) {
	req := chatRequest{Query: query, UseRAG: true, TopK: topK}

	var resp chatResponse
	if err := c.post(ctx, "/chat", req, &resp); err != nil {
		return nil, err
	}
	return answerFromResponse(resp), nil
}

// Query asks a question without retrieval. Top-k is never transmitted.
func (c *Client) Query(ctx context.Context, query string) (*domain.ChatAnswer, error) {
	req := chatRequest{Query: query}

	var resp chatResponse
	if err := c.post(ctx, "/query-without-rag", req, &resp); err != nil {
		return nil, err
	}
	return answerFromResponse(resp), nil
}

// Retrieve returns context chunks without generating an answer.
func (c *Client) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error) {
	req := chatRequest{Query: query, UseRAG: true, TopK: topK}

	var resp retrieveResponse
	if err := c.post(ctx, "/retrieve", req, &resp); err != nil {
		return nil, err
	}
	return chunksFromPayload(resp.Documents), nil
}

// Health probes backend liveness.
func (c *Client) Health(ctx context.Context) (*domain.BackendHealth, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp healthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &domain.BackendHealth{Status: resp.Status, Model: resp.Model}, nil
}

// post sends a JSON body and decodes a JSON response.
func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do executes a request and returns the body, mapping non-2xx statuses
// to errors that carry the backend's detail message when present.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("%s %s status=%d took=%s", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp errorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Detail != "" {
			return nil, fmt.Errorf("backend error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return nil, fmt.Errorf("backend error (status %d)", resp.StatusCode)
	}

	return body, nil
}

// answerFromResponse converts the wire response into the domain type.
func answerFromResponse(resp chatResponse) *domain.ChatAnswer {
	return &domain.ChatAnswer{
		Query:       resp.Query,
		Response:    resp.Response,
		Model:       resp.Model,
		ContextUsed: chunksFromPayload(resp.ContextUsed),
	}
}

// chunksFromPayload converts wire chunks into domain chunks.
func chunksFromPayload(payload []chunkPayload) []domain.RetrievedChunk {
	if len(payload) == 0 {
		return nil
	}
	chunks := make([]domain.RetrievedChunk, len(payload))
	for i, p := range payload {
		chunks[i] = domain.RetrievedChunk{
			ID:       p.ID,
			Text:     p.Text,
			Score:    p.Score,
			Metadata: p.Metadata,
		}
	}
	return chunks
}
