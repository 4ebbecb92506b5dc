package health

import (
	"context"

	"gamebalance/internal/utils"
)

// Checker reports the state of the backing services.
type Checker interface {
	Check(ctx context.Context) utils.HealthStatus
}

type Service interface {
	Check(ctx context.Context) utils.HealthStatus
}

type service struct {
	checker Checker
}

func NewService(checker Checker) Service {
	return &service{checker: checker}
}

func (s *service) Check(ctx context.Context) utils.HealthStatus {
	return s.checker.Check(ctx)
}
