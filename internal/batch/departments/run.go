// Package departments is the batch job that decides, for every transfer rule,
// which academic department should review it.
package departments

import (
	"context"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"transfers/internal/config"
	"transfers/internal/repository"
	"transfers/internal/routing"
)

// Run routes every rule (or just ruleKey, when non-empty) to a reviewing
// department and upserts the results into the rule_departments table. The
// routing index is built once up front and shared read-only by the workers.
func Run(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config, ruleKey string) error {
	rules := repository.NewRuleRepo(pool)
	disciplines := repository.NewDisciplineRepo(pool)
	courses := repository.NewCourseRepo(pool)
	results := repository.NewRoutingRepo(pool)

	active, err := disciplines.Active(ctx)
	if err != nil {
		return err
	}
	departmentNames, err := disciplines.Departments(ctx)
	if err != nil {
		return err
	}
	cipTitles, err := disciplines.CIPTitles(ctx)
	if err != nil {
		return err
	}
	idx := routing.NewIndex(active, departmentNames, cipTitles)

	meta, err := courses.Metadata(ctx)
	if err != nil {
		return err
	}
	sending, err := courses.SendingByRule(ctx, meta)
	if err != nil {
		return err
	}
	receiving, err := courses.ReceivingByRule(ctx, meta)
	if err != nil {
		return err
	}
	logger.Info().
		Int("disciplines", len(active)).
		Int("courses", len(meta)).
		Msg("Routing index built")

	if err := results.EnsureTable(ctx); err != nil {
		return err
	}

	keys := []string{ruleKey}
	if ruleKey == "" {
		if keys, err = rules.Keys(ctx, ""); err != nil {
			return err
		}
	}
	logger.Info().Int("rules", len(keys)).Msg("Routing rules to departments")

	var resolved, admin, skipped atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.RouteWorkers)
	for _, key := range keys {
		g.Go(func() error {
			result, err := routing.Route(key, receiving[key], sending[key], idx)
			if err != nil {
				logger.Error().Err(err).Str("rule", key).Msg("Skipping rule: cannot route")
				skipped.Add(1)
				return nil
			}

			if err := results.Upsert(ctx, result); err != nil {
				return err
			}
			if result.Resolved() {
				resolved.Add(1)
			} else {
				admin.Add(1)
			}
			logger.Debug().
				Str("rule", key).
				Str("department", result.Label()).
				Str("details", result.Detail).
				Msg("Routed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().
		Int64("resolved", resolved.Load()).
		Int64("admin", admin.Load()).
		Int64("skipped", skipped.Load()).
		Msg("Department routing complete")
	return nil
}
