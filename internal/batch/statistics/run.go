// Package statistics is the batch job that turns the latest transfer
// evaluation export into the per-institution statistics workbook.
package statistics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"transfers/internal/config"
	"transfers/internal/ingest"
	"transfers/internal/repository"
	"transfers/internal/report"
	"transfers/internal/stats"
)

var headings = []string{
	"Sending College",
	"Sending Course",
	"Number of Students",
	"Re-evaluations",
	"Percent Real",
	"Receiving Courses",
	"Rule Descriptions",
}

// One width per heading; the trailing columns hold multi-line text.
var widths = []float64{8.0, 12.0, 10.0, 10.0, 10.0, 30.0, 150.0}

// Run reads the newest evaluations CSV, aggregates per-destination transfer
// statistics for blanket-credit courses, and writes one workbook sheet per
// receiving institution.
func Run(ctx context.Context, logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) error {
	rules := repository.NewRuleRepo(pool)
	courses := repository.NewCourseRepo(pool)
	descriptionRepo := repository.NewDescriptionRepo(pool)

	sources, err := rules.BlanketSources(ctx)
	if err != nil {
		return err
	}
	meta, err := courses.Metadata(ctx)
	if err != nil {
		return err
	}
	descriptions, err := descriptionRepo.All(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Int("sending_courses", len(sources)).
		Int("courses", len(meta)).
		Int("descriptions", len(descriptions)).
		Msg("Reference data loaded")

	path, modTime, err := ingest.LatestExport(cfg.DownloadsDir)
	if err != nil {
		return err
	}
	logger.Info().
		Str("export", filepath.Base(path)).
		Time("exported_at", modTime).
		Msg("Processing evaluations export")

	agg := stats.NewAggregator(sources, meta)
	total, bad, err := readExport(path, logger, agg)
	if err != nil {
		return err
	}
	logger.Info().
		Int("evaluations", total).
		Int("bad_rows", bad).
		Int("zero_units_skipped", agg.ZeroUnits()).
		Msg("Evaluations aggregated")

	for _, share := range agg.Shares() {
		logger.Info().
			Str("institution", share.Institution).
			Int("total", share.Counts.Total).
			Int("real", share.Counts.NotBlanket).
			Float64("percent_real", share.Counts.PercentReal()).
			Msg("Transfer share")
	}

	out := filepath.Join(cfg.ReportsDir,
		time.Now().Format("2006-01-02")+"_transfer_statistics.xlsx")
	if err := writeWorkbook(agg, descriptions, out); err != nil {
		return err
	}
	logger.Info().Str("report", out).Msg("Statistics workbook written")
	return nil
}

// readExport streams the CSV through the aggregator. Rows that fail to parse
// or validate are logged and skipped; the export itself must at least open
// and carry the expected header.
func readExport(path string, logger zerolog.Logger, agg *stats.Aggregator) (total, bad int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	reader, err := ingest.NewReader(f)
	if err != nil {
		return 0, 0, err
	}
	for {
		ev, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return total, bad, nil
		}
		if err != nil {
			logger.Warn().Err(err).Msg("Skipping bad evaluation row")
			bad++
			continue
		}
		total++
		agg.Add(ev)
	}
}

func writeWorkbook(agg *stats.Aggregator, descriptions map[string]string, path string) error {
	wb, err := report.NewWorkbook()
	if err != nil {
		return err
	}
	for _, dst := range agg.Destinations() {
		rows := agg.Rows(dst, descriptions)
		if len(rows) == 0 {
			continue
		}
		cells := make([][]report.Cell, len(rows))
		problematic := make([]bool, len(rows))
		for i, row := range rows {
			cells[i] = []report.Cell{
				{Value: row.SendingCollege},
				{Value: row.SendingCourse},
				{Value: row.Students, Format: report.Counter},
				{Value: row.Reevaluations, Format: report.Counter},
				{Value: row.PercentReal, Format: report.Decimal},
				{Value: row.Receiving},
				{Value: row.Descriptions},
			}
			problematic[i] = row.Problematic
		}
		sheet := dst
		if len(sheet) > 3 {
			sheet = sheet[:3]
		}
		if err := wb.WriteSheet(sheet, headings, cells, problematic); err != nil {
			return err
		}
	}
	if err := wb.AdjustWidths(widths); err != nil {
		return err
	}
	return wb.Save(path)
}
