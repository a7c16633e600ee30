// Package domain defines the core business entities for ragtalk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: One entry in the conversation transcript
//   - RetrievedChunk: A context passage returned by the backend
//   - ChatAnswer: The backend's reply to a chat request
//   - ChatSettings: Per-conversation knobs (RAG toggle, top-k)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
