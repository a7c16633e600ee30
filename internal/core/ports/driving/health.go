package driving

import (
	"context"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

// HealthService probes the backend collaborator.
type HealthService interface {
	// Check performs a liveness probe against the backend.
	Check(ctx context.Context) (*domain.BackendHealth, error)
}
