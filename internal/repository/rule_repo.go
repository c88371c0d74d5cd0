package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"transfers/internal/model"
)

// ErrRuleNotFound is returned when a rule key matches no transfer rule.
var ErrRuleNotFound = errors.New("transfer rule not found")

// RuleRepository defines lookups against the transfer_rules table and its
// course lists.
type RuleRepository interface {
	// Keys returns every rule key, excluding the graduate and professional
	// schools, optionally restricted to one destination institution.
	Keys(ctx context.Context, destination string) ([]string, error)
	// Get fetches one rule with its sending and receiving course lists.
	Get(ctx context.Context, key string) (*model.TransferRule, error)
	// BlanketSources returns the sending courses that have at least one rule
	// awarding blanket or message credit, with the keys of those rules.
	BlanketSources(ctx context.Context) ([]model.BlanketSource, error)
	// FlagAggregates reports, per rule, whether the entire receiving side is
	// blanket credit.
	FlagAggregates(ctx context.Context) ([]model.RuleFlagAggregate, error)
}

type ruleRepo struct {
	pool *pgxpool.Pool
}

// NewRuleRepo creates a new RuleRepository.
func NewRuleRepo(pool *pgxpool.Pool) RuleRepository {
	return &ruleRepo{pool: pool}
}

func (r *ruleRepo) Keys(ctx context.Context, destination string) ([]string, error) {
	query := `
		SELECT rule_key
		FROM transfer_rules
		WHERE rule_key !~* ':(GRD|LAW|MED)01:'
		ORDER BY rule_key
	`
	args := []any{}
	if destination != "" {
		query = `
			SELECT rule_key
			FROM transfer_rules
			WHERE rule_key !~* ':(GRD|LAW|MED)01:'
			  AND destination_institution = $1
			ORDER BY rule_key
		`
		args = append(args, destination)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rule keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan rule key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rule key rows: %w", err)
	}
	return keys, nil
}

func (r *ruleRepo) Get(ctx context.Context, key string) (*model.TransferRule, error) {
	parsed, err := model.ParseRuleKey(key)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, source_disciplines, source_subjects, review_status
		FROM transfer_rules
		WHERE source_institution = $1
		  AND destination_institution = $2
		  AND subject_area = $3
		  AND group_number = $4
	`
	rule := model.TransferRule{Key: parsed}
	var sourceDisciplines, sourceSubjects string
	err = r.pool.QueryRow(ctx, query,
		parsed.SourceInstitution,
		parsed.DestinationInstitution,
		parsed.SubjectArea,
		parsed.GroupNumber,
	).Scan(&rule.ID, &sourceDisciplines, &sourceSubjects, &rule.ReviewStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", key, ErrRuleNotFound)
		}
		return nil, fmt.Errorf("query rule %s: %w", key, err)
	}
	rule.SourceDisciplines = splitColonList(sourceDisciplines)
	rule.SourceSubjects = splitColonList(sourceSubjects)

	if rule.SourceCourses, err = r.sourceCourses(ctx, rule.ID, parsed.SourceInstitution); err != nil {
		return nil, fmt.Errorf("rule %s: %w", key, err)
	}
	if rule.DestinationCourses, err = r.destinationCourses(ctx, rule.ID, parsed.DestinationInstitution); err != nil {
		return nil, fmt.Errorf("rule %s: %w", key, err)
	}
	return &rule, nil
}

func (r *ruleRepo) sourceCourses(ctx context.Context, ruleID int, institution string) ([]model.SourceCourse, error) {
	query := `
		SELECT sc.course_id, sc.offer_count, sc.discipline, sc.catalog_number,
		       dn.discipline_name, sc.cuny_subject, sc.cat_num,
		       sc.min_credits, sc.max_credits, sc.min_gpa, sc.max_gpa
		FROM source_courses sc
		JOIN cuny_disciplines dn
		  ON dn.institution = $2 AND dn.discipline = sc.discipline
		WHERE sc.rule_id = $1
		ORDER BY sc.discipline, sc.cat_num
	`
	rows, err := r.pool.Query(ctx, query, ruleID, institution)
	if err != nil {
		return nil, fmt.Errorf("query source courses: %w", err)
	}
	defer rows.Close()

	var courses []model.SourceCourse
	for rows.Next() {
		var c model.SourceCourse
		if err := rows.Scan(
			&c.CourseID,
			&c.OfferCount,
			&c.Discipline,
			&c.CatalogNumber,
			&c.DisciplineName,
			&c.CUNYSubject,
			&c.CatNum,
			&c.MinCredits,
			&c.MaxCredits,
			&c.MinGPA,
			&c.MaxGPA,
		); err != nil {
			return nil, fmt.Errorf("scan source course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source course rows: %w", err)
	}
	return courses, nil
}

func (r *ruleRepo) destinationCourses(ctx context.Context, ruleID int, institution string) ([]model.DestinationCourse, error) {
	query := `
		SELECT dc.course_id, dc.offer_count, dc.discipline, dc.catalog_number,
		       dn.discipline_name, dc.cuny_subject, dc.cat_num,
		       dc.transfer_credits, dc.credit_source, dc.is_mesg, dc.is_bkcr
		FROM destination_courses dc
		JOIN cuny_disciplines dn
		  ON dn.institution = $2 AND dn.discipline = dc.discipline
		WHERE dc.rule_id = $1
		ORDER BY dc.discipline, dc.cat_num
	`
	rows, err := r.pool.Query(ctx, query, ruleID, institution)
	if err != nil {
		return nil, fmt.Errorf("query destination courses: %w", err)
	}
	defer rows.Close()

	var courses []model.DestinationCourse
	for rows.Next() {
		var c model.DestinationCourse
		if err := rows.Scan(
			&c.CourseID,
			&c.OfferCount,
			&c.Discipline,
			&c.CatalogNumber,
			&c.DisciplineName,
			&c.CUNYSubject,
			&c.CatNum,
			&c.TransferCredits,
			&c.CreditSource,
			&c.IsMesg,
			&c.IsBkcr,
		); err != nil {
			return nil, fmt.Errorf("scan destination course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("destination course rows: %w", err)
	}
	return courses, nil
}

func (r *ruleRepo) BlanketSources(ctx context.Context) ([]model.BlanketSource, error) {
	query := `
		SELECT s.course_id, s.offer_nbr, s.discipline, s.catalog_number,
		       r.source_institution, r.destination_institution,
		       string_agg(r.rule_key, ' ') AS rules
		FROM source_courses s
		JOIN transfer_rules r ON r.id = s.rule_id
		JOIN destination_courses d ON d.rule_id = r.id
		WHERE d.is_bkcr OR d.is_mesg
		GROUP BY s.course_id, s.offer_nbr, s.discipline, s.catalog_number,
		         r.source_institution, r.destination_institution
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query blanket sources: %w", err)
	}
	defer rows.Close()

	var sources []model.BlanketSource
	for rows.Next() {
		var (
			s        model.BlanketSource
			ruleKeys string
		)
		if err := rows.Scan(
			&s.Course.ID,
			&s.Course.OfferNbr,
			&s.Discipline,
			&s.CatalogNumber,
			&s.SourceInstitution,
			&s.DestinationInstitution,
			&ruleKeys,
		); err != nil {
			return nil, fmt.Errorf("scan blanket source: %w", err)
		}
		s.Discipline = strings.TrimSpace(s.Discipline)
		s.CatalogNumber = strings.TrimSpace(s.CatalogNumber)
		s.RuleKeys = strings.Fields(ruleKeys)
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blanket source rows: %w", err)
	}
	return sources, nil
}

func (r *ruleRepo) FlagAggregates(ctx context.Context) ([]model.RuleFlagAggregate, error) {
	query := `
		SELECT r.source_institution, r.destination_institution,
		       bool_and(d.is_bkcr) AS all_bkcr
		FROM transfer_rules r
		JOIN destination_courses d ON d.rule_id = r.id
		GROUP BY r.id, r.source_institution, r.destination_institution
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query rule flag aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []model.RuleFlagAggregate
	for rows.Next() {
		var a model.RuleFlagAggregate
		if err := rows.Scan(&a.SourceInstitution, &a.DestinationInstitution, &a.AllBkcr); err != nil {
			return nil, fmt.Errorf("scan rule flag aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rule flag aggregate rows: %w", err)
	}
	return aggs, nil
}

// splitColonList parses the ":A:B:C:" encoding used by the legacy loader.
func splitColonList(s string) []string {
	s = strings.Trim(s, ":")
	if s == "" {
		return nil
	}
	return strings.Split(s, ":")
}
