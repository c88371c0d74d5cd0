// Package ingest reads the transfer-evaluation CSV exports that the
// statistics reports are built from.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Evaluation is one row of the evaluations export: one course evaluated for
// transfer credit for one student. A student can appear more than once for the
// same course because of re-evaluations.
type Evaluation struct {
	StudentID        string  `validate:"required"`
	SrcInstitution   string  `validate:"required"`
	SrcCourseID      int     `validate:"gt=0"`
	SrcOfferNbr      int     `validate:"gte=1"`
	SrcSubject       string  `validate:"required"`
	SrcCatalogNbr    string  `validate:"required"`
	UnitsTaken       float64 `validate:"gte=0"`
	DstInstitution   string  `validate:"required"`
	DstCourseID      int     `validate:"gte=0"`
	DstOfferNbr      int     `validate:"gte=0"`
	DstSubject       string
	DstCatalogNbr    string
	UnitsTransferred float64 `validate:"gte=0"`
}

// SrcCourse is the (course_id, offer_nbr) key of the evaluated course.
func (e *Evaluation) SrcCourse() (int, int) { return e.SrcCourseID, e.SrcOfferNbr }

// columns maps normalized header names to Evaluation fields. The export's
// headers vary in case and spacing, so they are normalized to
// lower_snake_case before lookup.
var columns = []string{
	"student_id",
	"src_institution",
	"src_course_id",
	"src_offer_nbr",
	"src_subject",
	"src_catalog_nbr",
	"units_taken",
	"dst_institution",
	"dst_course_id",
	"dst_offer_nbr",
	"dst_subject",
	"dst_catalog_nbr",
	"units_transferred",
}

// ErrNoExport is returned when the downloads directory holds no CSV export.
var ErrNoExport = errors.New("no csv export found")

// LatestExport returns the most recently modified *.csv file in dir, which is
// how the newest evaluations query download is located.
func LatestExport(dir string) (string, time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read downloads dir: %w", err)
	}

	var (
		latest   string
		latestAt time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", time.Time{}, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if latest == "" || info.ModTime().After(latestAt) {
			latest = filepath.Join(dir, entry.Name())
			latestAt = info.ModTime()
		}
	}
	if latest == "" {
		return "", time.Time{}, fmt.Errorf("%s: %w", dir, ErrNoExport)
	}
	return latest, latestAt, nil
}

// Reader decodes evaluation rows from a CSV export. Column order is taken from
// the header row, so exports with reordered or extra columns still parse.
type Reader struct {
	csv      *csv.Reader
	col      map[string]int
	validate *validator.Validate
	line     int
}

// NewReader consumes the header row and prepares to read evaluations.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalizeHeader(name)] = i
	}
	for _, name := range columns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("csv export is missing column %q", name)
		}
	}
	return &Reader{csv: cr, col: col, validate: validator.New(), line: 1}, nil
}

// Read returns the next evaluation, or io.EOF at the end of the export.
func (r *Reader) Read() (*Evaluation, error) {
	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read csv record: %w", err)
	}
	r.line++

	ev := &Evaluation{
		StudentID:      r.field(record, "student_id"),
		SrcInstitution: r.field(record, "src_institution"),
		SrcSubject:     strings.TrimSpace(r.field(record, "src_subject")),
		SrcCatalogNbr:  strings.TrimSpace(r.field(record, "src_catalog_nbr")),
		DstInstitution: r.field(record, "dst_institution"),
		DstSubject:     strings.TrimSpace(r.field(record, "dst_subject")),
		DstCatalogNbr:  strings.TrimSpace(r.field(record, "dst_catalog_nbr")),
	}

	var parseErr error
	parseInt := func(name string) int {
		v, err := strconv.Atoi(strings.TrimSpace(r.field(record, name)))
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("line %d: column %s: %w", r.line, name, err)
		}
		return v
	}
	parseFloat := func(name string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(r.field(record, name)), 64)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("line %d: column %s: %w", r.line, name, err)
		}
		return v
	}

	ev.SrcCourseID = parseInt("src_course_id")
	ev.SrcOfferNbr = parseInt("src_offer_nbr")
	ev.DstCourseID = parseInt("dst_course_id")
	ev.DstOfferNbr = parseInt("dst_offer_nbr")
	ev.UnitsTaken = parseFloat("units_taken")
	ev.UnitsTransferred = parseFloat("units_transferred")
	if parseErr != nil {
		return nil, parseErr
	}

	if err := r.validate.Struct(ev); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line, err)
	}
	return ev, nil
}

func (r *Reader) field(record []string, name string) string {
	i := r.col[name]
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func normalizeHeader(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
