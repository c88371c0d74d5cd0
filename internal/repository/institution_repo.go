package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InstitutionRepository defines lookups against the cuny_institutions table.
type InstitutionRepository interface {
	// Names returns institution code -> display name for every institution.
	Names(ctx context.Context) (map[string]string, error)
}

type institutionRepo struct {
	pool *pgxpool.Pool
}

// NewInstitutionRepo creates a new InstitutionRepository.
func NewInstitutionRepo(pool *pgxpool.Pool) InstitutionRepository {
	return &institutionRepo{pool: pool}
}

func (r *institutionRepo) Names(ctx context.Context) (map[string]string, error) {
	query := `SELECT code, prompt FROM cuny_institutions`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query institution names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var code, prompt string
		if err := rows.Scan(&code, &prompt); err != nil {
			return nil, fmt.Errorf("scan institution name: %w", err)
		}
		names[code] = prompt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("institution name rows: %w", err)
	}
	return names, nil
}
