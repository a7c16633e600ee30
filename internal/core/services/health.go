package services

import (
	"context"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driven"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driving"
	"github.com/ragtalk-labs/ragtalk-cli/internal/logger"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// HealthService probes the backend collaborator.
type HealthService struct {
	backend driven.Backend
}

// NewHealthService creates a new health service.
func NewHealthService(backend driven.Backend) *HealthService {
	return &HealthService{backend: backend}
}

// Check performs a liveness probe against the backend.
func (s *HealthService) Check(ctx context.Context) (*domain.BackendHealth, error) {
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}

	health, err := s.backend.Health(ctx)
	if err != nil {
		logger.Debug("health probe failed: %v", err)
		return nil, err
	}
	return health, nil
}
