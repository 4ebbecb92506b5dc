package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	probeTimeout = 2 * time.Second
)

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  []Service `json:"services"`
}

type Service struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Probe checks one backing service.
type Probe struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthChecker struct {
	Probes []Probe
	Clock  Clock
}

// NewHealthChecker probes PostgreSQL and Redis. Nil dependencies are skipped.
func NewHealthChecker(db *gorm.DB, rdb *redis.Client, clock Clock) *HealthChecker {
	h := &HealthChecker{Clock: clock}
	if db != nil {
		h.Probes = append(h.Probes, Probe{Name: "PostgreSQL", Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}})
	}
	if rdb != nil {
		h.Probes = append(h.Probes, Probe{Name: "Redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return h
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:   StatusOK,
		Services: make([]Service, 0, len(h.Probes)),
	}

	for _, p := range h.Probes {
		service := Service{Name: p.Name, Status: "up"}
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		if err := p.Ping(probeCtx); err != nil {
			service.Status = "down"
			service.Message = err.Error()
			status.Status = StatusDegraded
		}
		cancel()
		status.Services = append(status.Services, service)
	}

	clock := h.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	status.Timestamp = clock.Now().UTC()
	return status
}
