package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DescriptionRepository persists the natural-language rule descriptions, one
// row per rule key.
type DescriptionRepository interface {
	// EnsureTable creates the rule_descriptions table when it does not exist.
	EnsureTable(ctx context.Context) error
	// Upsert stores the description for a rule, replacing any previous one.
	Upsert(ctx context.Context, ruleKey, description string) error
	// All returns every stored description keyed by rule key.
	All(ctx context.Context) (map[string]string, error)
}

type descriptionRepo struct {
	pool *pgxpool.Pool
}

// NewDescriptionRepo creates a new DescriptionRepository.
func NewDescriptionRepo(pool *pgxpool.Pool) DescriptionRepository {
	return &descriptionRepo{pool: pool}
}

func (r *descriptionRepo) EnsureTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS rule_descriptions (
			rule_key text PRIMARY KEY,
			description text
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create rule_descriptions: %w", err)
	}
	return nil
}

func (r *descriptionRepo) Upsert(ctx context.Context, ruleKey, description string) error {
	query := `
		INSERT INTO rule_descriptions (rule_key, description)
		VALUES ($1, $2)
		ON CONFLICT (rule_key)
		DO UPDATE SET description = EXCLUDED.description
	`
	if _, err := r.pool.Exec(ctx, query, ruleKey, description); err != nil {
		return fmt.Errorf("upsert description for %s: %w", ruleKey, err)
	}
	return nil
}

func (r *descriptionRepo) All(ctx context.Context) (map[string]string, error) {
	query := `SELECT rule_key, description FROM rule_descriptions`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query descriptions: %w", err)
	}
	defer rows.Close()

	descriptions := make(map[string]string)
	for rows.Next() {
		var key, description string
		if err := rows.Scan(&key, &description); err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		descriptions[key] = description
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("description rows: %w", err)
	}
	return descriptions, nil
}
