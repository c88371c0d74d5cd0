// Package bkcr is the batch job that counts, for every pair of colleges, how
// many transfer rules award nothing but blanket credit.
package bkcr

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"transfers/internal/repository"
)

// colleges are the undergraduate campuses included in the matrix.
var colleges = []string{
	"BAR", "BCC", "BKL", "BMC", "CSI", "CTY", "HOS", "HTR", "JJC", "KCC",
	"LAG", "LEH", "MEC", "NCC", "NYT", "QCC", "QNS", "SLU", "SPS", "YRK",
}

// ignored are the graduate and professional schools.
var ignored = map[string]bool{"GRD": true, "LAW": true, "SPH": true}

type pairCounts struct {
	total   map[string]int
	allBkcr map[string]int
}

// Run writes a source-by-destination matrix of rule counts, all-blanket-credit
// counts, and the all-blanket share, to out.
func Run(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, out io.Writer) error {
	rules := repository.NewRuleRepo(pool)
	aggregates, err := rules.FlagAggregates(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("rules", len(aggregates)).Msg("Counting all-BKCR rules")

	counts := make(map[string]*pairCounts, len(colleges))
	for _, src := range colleges {
		counts[src] = &pairCounts{total: make(map[string]int), allBkcr: make(map[string]int)}
	}
	for _, agg := range aggregates {
		src, dst := shortCode(agg.SourceInstitution), shortCode(agg.DestinationInstitution)
		if ignored[src] || ignored[dst] {
			continue
		}
		c, ok := counts[src]
		if !ok {
			continue
		}
		c.total[dst]++
		if agg.AllBkcr {
			c.allBkcr[dst]++
		}
	}

	writeMatrix(out, counts)
	return nil
}

func writeMatrix(out io.Writer, counts map[string]*pairCounts) {
	fmt.Fprintf(out, "    SRC\\DST ")
	for _, dst := range colleges {
		fmt.Fprintf(out, "%7s", dst)
	}
	fmt.Fprintln(out)

	for _, src := range colleges {
		c := counts[src]
		fmt.Fprintf(out, "%11s ", src)
		for _, dst := range colleges {
			fmt.Fprintf(out, "%7d", c.total[dst])
		}
		fmt.Fprintf(out, "\n # all_bkcr ")
		for _, dst := range colleges {
			fmt.Fprintf(out, "%7d", c.allBkcr[dst])
		}
		fmt.Fprintf(out, "\n %% all_bkcr ")
		for _, dst := range colleges {
			if c.total[dst] == 0 {
				fmt.Fprintf(out, "%7s", "--")
				continue
			}
			fmt.Fprintf(out, "%7.1f", 100*float64(c.allBkcr[dst])/float64(c.total[dst]))
		}
		fmt.Fprintln(out)
	}
}

func shortCode(institution string) string {
	if len(institution) > 3 {
		return institution[:3]
	}
	return institution
}
