// Package stats aggregates transfer-evaluation rows into the per-institution
// statistics the workbook reports are built from: how often each sending
// course transfers, and how much of its credit arrives as real course credit
// rather than blanket credit.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"transfers/internal/ingest"
	"transfers/internal/model"
)

// Counts tracks, per destination institution, how many evaluations were seen
// and how many were for courses with no blanket-credit rules at all.
type Counts struct {
	Total      int
	NotBlanket int
}

// PercentReal is the share of evaluations not involving blanket-credit rules.
func (c Counts) PercentReal() float64 {
	if c.Total == 0 {
		return 0
	}
	return 100 * float64(c.NotBlanket) / float64(c.Total)
}

// receivingTally counts how often one receiving course was assigned, with its
// catalog flag markers.
type receivingTally struct {
	count int
	flags string
}

// courseStats accumulates outcomes for one sending course at one destination.
type courseStats struct {
	source      model.BlanketSource
	evaluations int
	students    map[string]bool
	unitsTaken  float64
	realCredits float64
	bkcrCredits float64
	receiving   map[string]*receivingTally
}

// Aggregator folds evaluation rows into per-destination statistics. It only
// tracks sending courses that have at least one blanket/message-credit rule;
// everything else just counts toward the real-transfer share.
type Aggregator struct {
	sources   map[string]map[model.CourseID]model.BlanketSource
	meta      map[model.CourseID]model.CourseMeta
	counts    map[string]*Counts
	stats     map[string]map[model.CourseID]*courseStats
	zeroUnits int
}

// NewAggregator prepares an aggregator over the given blanket-rule sending
// courses and catalog metadata.
func NewAggregator(sources []model.BlanketSource, meta map[model.CourseID]model.CourseMeta) *Aggregator {
	byDst := make(map[string]map[model.CourseID]model.BlanketSource)
	for _, s := range sources {
		if byDst[s.DestinationInstitution] == nil {
			byDst[s.DestinationInstitution] = make(map[model.CourseID]model.BlanketSource)
		}
		byDst[s.DestinationInstitution][s.Course] = s
	}
	return &Aggregator{
		sources: byDst,
		meta:    meta,
		counts:  make(map[string]*Counts),
		stats:   make(map[string]map[model.CourseID]*courseStats),
	}
}

// Add folds one evaluation row into the statistics. Zero units-taken rows are
// non-credit courses (Pathways exemptions and the like) and are skipped.
func (a *Aggregator) Add(ev *ingest.Evaluation) {
	if ev.UnitsTaken == 0 {
		a.zeroUnits++
		return
	}

	dst := ev.DstInstitution
	if a.counts[dst] == nil {
		a.counts[dst] = &Counts{}
	}
	a.counts[dst].Total++

	srcCourse := model.CourseID{ID: ev.SrcCourseID, OfferNbr: ev.SrcOfferNbr}
	source, ok := a.sources[dst][srcCourse]
	if !ok {
		// No blanket-credit rules for this course; it transfers as itself.
		a.counts[dst].NotBlanket++
		return
	}

	if a.stats[dst] == nil {
		a.stats[dst] = make(map[model.CourseID]*courseStats)
	}
	cs := a.stats[dst][srcCourse]
	if cs == nil {
		cs = &courseStats{
			source:    source,
			students:  make(map[string]bool),
			receiving: make(map[string]*receivingTally),
		}
		a.stats[dst][srcCourse] = cs
	}

	cs.evaluations++
	cs.students[ev.StudentID] = true
	cs.unitsTaken += ev.UnitsTaken

	dstCourse := model.CourseID{ID: ev.DstCourseID, OfferNbr: ev.DstOfferNbr}
	dstMeta, ok := a.meta[dstCourse]
	if !ok {
		dstMeta = model.CourseMeta{
			Institution:   dst,
			Discipline:    ev.DstSubject,
			CatalogNumber: ev.DstCatalogNbr,
			IsUnknown:     true,
		}
	}
	if !ok || dstMeta.Admin() {
		cs.bkcrCredits += ev.UnitsTransferred
	} else {
		cs.realCredits += ev.UnitsTransferred
	}

	courseStr := dstMeta.CourseString()
	tally := cs.receiving[courseStr]
	if tally == nil {
		tally = &receivingTally{}
		cs.receiving[courseStr] = tally
	}
	tally.count++
	tally.flags = dstMeta.Flags()
}

// ZeroUnits reports how many zero units-taken rows were skipped.
func (a *Aggregator) ZeroUnits() int { return a.zeroUnits }

// Destinations returns the institutions with any evaluations, sorted.
func (a *Aggregator) Destinations() []string {
	out := make([]string, 0, len(a.counts))
	for dst := range a.counts {
		out = append(out, dst)
	}
	sort.Strings(out)
	return out
}

// Share is one line of the real-transfer summary.
type Share struct {
	Institution string
	Counts      Counts
}

// Shares returns the per-destination real-transfer summary, sorted by
// institution.
func (a *Aggregator) Shares() []Share {
	out := make([]Share, 0, len(a.counts))
	for _, dst := range a.Destinations() {
		out = append(out, Share{Institution: dst, Counts: *a.counts[dst]})
	}
	return out
}

// Row is one report line: a sending course and how it transferred.
type Row struct {
	SendingCollege string
	SendingCourse  string
	Students       int
	Reevaluations  int
	PercentReal    float64
	Receiving      string
	Descriptions   string
	// Problematic rows awarded less real credit than the students earned.
	Problematic bool
}

// Rows renders the statistics for one destination institution, most-transferred
// courses first. descriptions supplies the stored rule descriptions by key.
func (a *Aggregator) Rows(dst string, descriptions map[string]string) []Row {
	byCourse := a.stats[dst]
	rows := make([]Row, 0, len(byCourse))
	for _, cs := range byCourse {
		rows = append(rows, Row{
			SendingCollege: shortInstitution(cs.source.SourceInstitution),
			SendingCourse:  cs.source.CourseString(),
			Students:       len(cs.students),
			Reevaluations:  cs.evaluations - len(cs.students),
			PercentReal:    percentReal(cs.realCredits, cs.bkcrCredits),
			Receiving:      renderReceiving(cs.receiving),
			Descriptions:   renderDescriptions(cs.source.RuleKeys, descriptions),
			Problematic:    cs.realCredits < cs.unitsTaken,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Students != rows[j].Students {
			return rows[i].Students > rows[j].Students
		}
		return rows[i].SendingCourse < rows[j].SendingCourse
	})
	return rows
}

func percentReal(real, bkcr float64) float64 {
	total := real + bkcr
	if total == 0 {
		return 0
	}
	return 100 * real / total
}

// renderReceiving lists each assigned receiving course with its count and flag
// markers, one per line.
func renderReceiving(receiving map[string]*receivingTally) string {
	courses := make([]string, 0, len(receiving))
	for c := range receiving {
		courses = append(courses, c)
	}
	sort.Strings(courses)

	lines := make([]string, 0, len(courses))
	for _, c := range courses {
		t := receiving[c]
		lines = append(lines, fmt.Sprintf("%s [%d]%s", c, t.count, t.flags))
	}
	return strings.Join(lines, "\n")
}

// renderDescriptions lists the descriptions of every rule that might have been
// involved, prefixed by the subject-area part of the rule key.
func renderDescriptions(ruleKeys []string, descriptions map[string]string) string {
	lines := make([]string, 0, len(ruleKeys))
	for _, ruleKey := range ruleKeys {
		description, ok := descriptions[ruleKey]
		if !ok {
			description = "(no description)"
		}
		label := ruleKey
		if key, err := model.ParseRuleKey(ruleKey); err == nil {
			label = key.SubjectArea + " " + key.GroupNumber
		}
		lines = append(lines, label+": "+description)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// shortInstitution trims the "01" campus suffix: "QNS01" -> "QNS".
func shortInstitution(code string) string {
	if len(code) > 3 {
		return code[:3]
	}
	return code
}
