package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"transfers/internal/model"
)

// CourseRepository loads catalog metadata and the per-rule course sets the
// department router consumes.
type CourseRepository interface {
	// Metadata returns the catalog snapshot for every course.
	Metadata(ctx context.Context) (map[model.CourseID]model.CourseMeta, error)
	// SendingByRule returns the sending-side course metadata for every rule,
	// keyed by rule key. Sending courses missing from the catalog are skipped;
	// they can no longer contribute a discipline or subject.
	SendingByRule(ctx context.Context, meta map[model.CourseID]model.CourseMeta) (map[string][]model.CourseMeta, error)
	// ReceivingByRule returns the receiving-side course metadata for every
	// rule, keyed by rule key. Receiving courses missing from the catalog are
	// represented as unknown, not dropped.
	ReceivingByRule(ctx context.Context, meta map[model.CourseID]model.CourseMeta) (map[string][]model.CourseMeta, error)
}

type courseRepo struct {
	pool *pgxpool.Pool
}

// NewCourseRepo creates a new CourseRepository.
func NewCourseRepo(pool *pgxpool.Pool) CourseRepository {
	return &courseRepo{pool: pool}
}

func (r *courseRepo) Metadata(ctx context.Context) (map[model.CourseID]model.CourseMeta, error) {
	query := `
		SELECT course_id, offer_nbr, institution, discipline, catalog_number, cuny_subject,
		       career ~* '^U' AS is_ugrad,
		       course_status = 'A' AS is_active,
		       designation IN ('MNL', 'MLA') AS is_mesg,
		       attributes ~* 'bkcr' AS is_bkcr
		FROM cuny_courses
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query course metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[model.CourseID]model.CourseMeta)
	for rows.Next() {
		var (
			id model.CourseID
			m  model.CourseMeta
		)
		if err := rows.Scan(
			&id.ID,
			&id.OfferNbr,
			&m.Institution,
			&m.Discipline,
			&m.CatalogNumber,
			&m.CUNYSubject,
			&m.IsUndergrad,
			&m.IsActive,
			&m.IsMesg,
			&m.IsBkcr,
		); err != nil {
			return nil, fmt.Errorf("scan course metadata: %w", err)
		}
		m.Discipline = strings.TrimSpace(m.Discipline)
		m.CatalogNumber = strings.TrimSpace(m.CatalogNumber)
		meta[id] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("course metadata rows: %w", err)
	}
	return meta, nil
}

func (r *courseRepo) SendingByRule(ctx context.Context, meta map[model.CourseID]model.CourseMeta) (map[string][]model.CourseMeta, error) {
	query := `
		SELECT r.rule_key, s.course_id, s.offer_nbr
		FROM source_courses s
		JOIN transfer_rules r ON r.id = s.rule_id
	`
	byRule, err := r.courseMetaByRule(ctx, query, meta, false)
	if err != nil {
		return nil, fmt.Errorf("sending courses by rule: %w", err)
	}
	return byRule, nil
}

func (r *courseRepo) ReceivingByRule(ctx context.Context, meta map[model.CourseID]model.CourseMeta) (map[string][]model.CourseMeta, error) {
	query := `
		SELECT r.rule_key, d.course_id, d.offer_nbr
		FROM destination_courses d
		JOIN transfer_rules r ON r.id = d.rule_id
	`
	byRule, err := r.courseMetaByRule(ctx, query, meta, true)
	if err != nil {
		return nil, fmt.Errorf("receiving courses by rule: %w", err)
	}
	return byRule, nil
}

func (r *courseRepo) courseMetaByRule(ctx context.Context, query string, meta map[model.CourseID]model.CourseMeta, substituteUnknown bool) (map[string][]model.CourseMeta, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	byRule := make(map[string][]model.CourseMeta)
	for rows.Next() {
		var (
			ruleKey string
			id      model.CourseID
		)
		if err := rows.Scan(&ruleKey, &id.ID, &id.OfferNbr); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		m, ok := meta[id]
		if !ok {
			if !substituteUnknown {
				continue
			}
			// The course has gone missing from the catalog; keep a visible
			// placeholder so the rule still routes and renders.
			key, err := model.ParseRuleKey(ruleKey)
			if err != nil {
				return nil, err
			}
			m = model.UnknownCourse(key.DestinationInstitution)
		}
		byRule[ruleKey] = append(byRule[ruleKey], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return byRule, nil
}
