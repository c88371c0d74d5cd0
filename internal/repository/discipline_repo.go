package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"transfers/internal/model"
)

// DisciplineRepository loads the reference data the department router needs:
// discipline ownership, active department names, and CIP code titles.
type DisciplineRepository interface {
	// Active returns the discipline records for active, non-administrative
	// departments.
	Active(ctx context.Context) ([]model.Discipline, error)
	// Departments returns the active departments with their display names.
	Departments(ctx context.Context) ([]model.Department, error)
	// CIPTitles returns CIP code -> tidied display title.
	CIPTitles(ctx context.Context) (map[string]string, error)
}

type disciplineRepo struct {
	pool *pgxpool.Pool
}

// NewDisciplineRepo creates a new DisciplineRepository.
func NewDisciplineRepo(pool *pgxpool.Pool) DisciplineRepository {
	return &disciplineRepo{pool: pool}
}

func (r *disciplineRepo) Active(ctx context.Context) ([]model.Discipline, error) {
	// Administrative pseudo-departments never review rules.
	query := `
		SELECT institution, department, discipline, discipline_name, cip_code, cuny_subject
		FROM cuny_disciplines
		WHERE status = 'A'
		  AND department !~* '01$'
		  AND department !~* '^(PERMIT-|REG-|ADMIN-|PROV-|MISC-|UGRD-|ACAD)'
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query disciplines: %w", err)
	}
	defer rows.Close()

	var disciplines []model.Discipline
	for rows.Next() {
		var d model.Discipline
		if err := rows.Scan(
			&d.Institution,
			&d.Department,
			&d.Discipline,
			&d.DisciplineName,
			&d.CIPCode,
			&d.CUNYSubject,
		); err != nil {
			return nil, fmt.Errorf("scan discipline: %w", err)
		}
		disciplines = append(disciplines, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("discipline rows: %w", err)
	}
	return disciplines, nil
}

func (r *disciplineRepo) Departments(ctx context.Context) ([]model.Department, error) {
	query := `
		SELECT institution, department, department_name
		FROM cuny_departments
		WHERE department_status = 'A'
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.Institution, &d.Department, &d.Name); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("department rows: %w", err)
	}
	return departments, nil
}

func (r *disciplineRepo) CIPTitles(ctx context.Context) (map[string]string, error) {
	query := `SELECT cip_code, cip_title FROM cip2020codes`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query cip titles: %w", err)
	}
	defer rows.Close()

	titles := make(map[string]string)
	for rows.Next() {
		var code, title string
		if err := rows.Scan(&code, &title); err != nil {
			return nil, fmt.Errorf("scan cip title: %w", err)
		}
		titles[code] = tidyCIPTitle(title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cip title rows: %w", err)
	}
	return titles, nil
}

// tidyCIPTitle turns the federal all-caps, period-terminated titles into
// report-friendly form: "BIOLOGICAL AND BIOMEDICAL SCIENCES." ->
// "Biological and Biomedical Sciences".
func tidyCIPTitle(title string) string {
	title = strings.TrimRight(title, ".")
	words := strings.Fields(strings.ToLower(title))
	for i, w := range words {
		if i > 0 && w == "and" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
