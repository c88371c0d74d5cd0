package describe

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"transfers/internal/model"
)

// InstitutionNames maps an institution code to its display name.
type InstitutionNames map[string]string

// Errors a rule description can fail with. The caller decides whether to skip,
// log, or abort; the composer never guesses.
var (
	ErrEmptySendingSide   = errors.New("rule has no sending courses")
	ErrEmptyReceivingSide = errors.New("rule has no receiving courses")
	ErrDuplicateCourse    = errors.New("duplicate course id within one side of a rule")
	ErrUnknownInstitution = errors.New("no display name for institution")
)

// gradeRange groups sending courses that share a grade requirement.
type gradeRange struct {
	min, max float64
}

// Rule returns a plain-text description of a transfer rule:
//
//	Passing grade in BIOL 101 and BIOL 102 at Queens College (7.0 cr)
//	transfers to Lehman College as BIO-226 (7.0 cr)
//
// Grade requirements, credit totals, and blanket-credit adjustments follow the
// rule's course data exactly; any inconsistency in that data is an error.
func Rule(rule model.TransferRule, names InstitutionNames) (string, error) {
	if len(rule.SourceCourses) == 0 {
		return "", fmt.Errorf("%s: %w", rule.Key, ErrEmptySendingSide)
	}
	if len(rule.DestinationCourses) == 0 {
		return "", fmt.Errorf("%s: %w", rule.Key, ErrEmptyReceivingSide)
	}

	seen := make(map[int]bool, len(rule.SourceCourses))
	for _, c := range rule.SourceCourses {
		if seen[c.CourseID] {
			return "", fmt.Errorf("%s: sending course %d: %w", rule.Key, c.CourseID, ErrDuplicateCourse)
		}
		seen[c.CourseID] = true
	}
	seen = make(map[int]bool, len(rule.DestinationCourses))
	for _, c := range rule.DestinationCourses {
		if seen[c.CourseID] {
			return "", fmt.Errorf("%s: receiving course %d: %w", rule.Key, c.CourseID, ErrDuplicateCourse)
		}
		seen[c.CourseID] = true
	}

	sourceName, ok := names[rule.Key.SourceInstitution]
	if !ok {
		return "", fmt.Errorf("%s: %w %s", rule.Key, ErrUnknownInstitution, rule.Key.SourceInstitution)
	}
	destName, ok := names[rule.Key.DestinationInstitution]
	if !ok {
		return "", fmt.Errorf("%s: %w %s", rule.Key, ErrUnknownInstitution, rule.Key.DestinationInstitution)
	}

	sendingSide, minCredits, maxCredits, err := sendingClause(rule)
	if err != nil {
		return "", fmt.Errorf("%s: %w", rule.Key, err)
	}
	receivingSide, destCredits := receivingClause(rule.DestinationCourses, minCredits)

	sourceCredits := fmt.Sprintf("%.1f", minCredits)
	if minCredits != maxCredits {
		sourceCredits = fmt.Sprintf("%.1f-%.1f", minCredits, maxCredits)
	}

	return fmt.Sprintf("%s at %s (%s cr) transfers to %s as %s (%.1f cr)",
		sendingSide, sourceName, sourceCredits, destName, receivingSide, destCredits), nil
}

// sendingClause renders the sending side: courses grouped by grade requirement,
// each group AND-listed in catalog-number order. Grade requirements can differ
// within one rule, so the groups are rendered in ascending grade order.
func sendingClause(rule model.TransferRule) (clause string, minCredits, maxCredits float64, err error) {
	groups := make(map[gradeRange][]model.SourceCourse)
	for _, c := range rule.SourceCourses {
		minCredits += c.MinCredits
		maxCredits += c.MaxCredits
		k := gradeRange{c.MinGPA, c.MaxGPA}
		groups[k] = append(groups[k], c)
	}

	keys := make([]gradeRange, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].min != keys[j].min {
			return keys[i].min < keys[j].min
		}
		return keys[i].max < keys[j].max
	})

	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		grade, gerr := FormatGrade(k.min, k.max)
		if gerr != nil {
			return "", 0, 0, gerr
		}
		courses := groups[k]
		sort.Slice(courses, func(i, j int) bool { return courses[i].CatNum < courses[j].CatNum })
		labels := make([]string, len(courses))
		for i, c := range courses {
			labels[i] = c.Label()
		}
		clauses = append(clauses, grade+" in "+JoinList(labels, "and"))
	}

	return capitalizeClause(strings.Join(clauses, " and ")), minCredits, maxCredits, nil
}

// capitalizeClause makes the sending clause sentence-initial. The degenerate
// passing requirement reads badly as "Any passing grade in", so it becomes
// "Passing grade in".
func capitalizeClause(s string) string {
	if rest, ok := strings.CutPrefix(s, PassingGrade); ok {
		return "Passing grade" + rest
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// receivingClause renders the receiving side and computes its credit total.
// Courses are grouped by discipline with catalog numbers run together, and a
// blanket-credit course absorbs whatever credits are needed to match the
// sending side's minimum.
func receivingClause(courses []model.DestinationCourse, minSourceCredits float64) (string, float64) {
	ordered := make([]model.DestinationCourse, len(courses))
	copy(ordered, courses)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Discipline != ordered[j].Discipline {
			return ordered[i].Discipline < ordered[j].Discipline
		}
		return ordered[i].CatNum < ordered[j].CatNum
	})

	var (
		labels     []string
		credits    float64
		hasBkcr    bool
		discipline string
	)
	for _, c := range ordered {
		if c.IsBkcr {
			hasBkcr = true // credits computed below to match the sending side
		} else {
			credits += c.TransferCredits
		}
		if c.Discipline != discipline {
			discipline = c.Discipline
			labels = append(labels, c.Discipline+"-"+c.CatalogNumber)
		} else {
			labels[len(labels)-1] += c.CatalogNumber
		}
	}

	if hasBkcr && credits < minSourceCredits {
		credits = minSourceCredits
	}
	return strings.Join(labels, " and "), credits
}
