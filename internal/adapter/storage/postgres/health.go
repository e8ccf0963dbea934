package postgres

import "context"

// HealthCheck implements ports.HealthChecker for one schema-bound pool.
type HealthCheck struct {
	pool Pool
	name string
}

// NewHealthCheck creates a PostgreSQL health checker. The name distinguishes
// pools when several asset schemas are configured.
func NewHealthCheck(pool Pool, name string) *HealthCheck {
	return &HealthCheck{pool: pool, name: name}
}

// Ping checks PostgreSQL connectivity.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, "SELECT 1")
	return err
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return h.name
}
