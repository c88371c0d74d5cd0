package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"transfers/internal/routing"
)

// RoutingRepository persists department routing results, one row per rule key.
type RoutingRepository interface {
	// EnsureTable creates the rule_departments table when it does not exist.
	EnsureTable(ctx context.Context) error
	// Upsert stores the routing result for a rule, replacing any previous one.
	Upsert(ctx context.Context, result routing.Result) error
}

type routingRepo struct {
	pool *pgxpool.Pool
}

// NewRoutingRepo creates a new RoutingRepository.
func NewRoutingRepo(pool *pgxpool.Pool) RoutingRepository {
	return &routingRepo{pool: pool}
}

func (r *routingRepo) EnsureTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS rule_departments (
			rule_key text PRIMARY KEY,
			department text,
			details text
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create rule_departments: %w", err)
	}
	return nil
}

func (r *routingRepo) Upsert(ctx context.Context, result routing.Result) error {
	query := `
		INSERT INTO rule_departments (rule_key, department, details)
		VALUES ($1, $2, $3)
		ON CONFLICT (rule_key)
		DO UPDATE SET
			department = EXCLUDED.department,
			details = EXCLUDED.details
	`
	if _, err := r.pool.Exec(ctx, query, result.RuleKey, result.Label(), result.Detail); err != nil {
		return fmt.Errorf("upsert routing for %s: %w", result.RuleKey, err)
	}
	return nil
}
