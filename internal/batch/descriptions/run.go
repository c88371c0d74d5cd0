// Package descriptions is the batch job that renders and stores a
// natural-language description for every transfer rule.
package descriptions

import (
	"context"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"transfers/internal/config"
	"transfers/internal/describe"
	"transfers/internal/repository"
)

// Run builds the description for every rule and upserts it into the
// rule_descriptions table. Rules with bad data are logged and skipped; a
// persistence failure aborts the run.
func Run(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) error {
	rules := repository.NewRuleRepo(pool)
	institutions := repository.NewInstitutionRepo(pool)
	descriptions := repository.NewDescriptionRepo(pool)

	names, err := institutions.Names(ctx)
	if err != nil {
		return err
	}
	if err := descriptions.EnsureTable(ctx); err != nil {
		return err
	}
	keys, err := rules.Keys(ctx, "")
	if err != nil {
		return err
	}
	logger.Info().Int("rules", len(keys)).Msg("Building rule descriptions")

	var described, skipped atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.DescribeWorkers)
	for _, key := range keys {
		g.Go(func() error {
			rule, err := rules.Get(ctx, key)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error().Err(err).Str("rule", key).Msg("Skipping rule: fetch failed")
				skipped.Add(1)
				return nil
			}

			text, err := describe.Rule(*rule, names)
			if err != nil {
				logger.Error().Err(err).Str("rule", key).Msg("Skipping rule: cannot describe")
				skipped.Add(1)
				return nil
			}

			if err := descriptions.Upsert(ctx, key, text); err != nil {
				return err
			}
			described.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().
		Int64("described", described.Load()).
		Int64("skipped", skipped.Load()).
		Msg("Rule descriptions complete")
	return nil
}
