// Package routing decides which academic department should be responsible for
// reviewing a transfer rule, based on the receiving courses' disciplines with
// graduated fallbacks through CUNY subject and CIP code area matching.
package routing

import (
	"sort"

	"transfers/internal/model"
)

// instKey scopes a code to one institution.
type instKey struct {
	institution string
	code        string
}

// Index is the read-only reference snapshot the router consults: discipline
// ownership, department display names, and which departments offer each CUNY
// subject and CIP code area at each institution. Build it once; it is safe for
// unlimited concurrent readers.
type Index struct {
	disciplines     map[instKey]model.Discipline
	departmentNames map[instKey]string
	cunySubjects    map[instKey]map[string]bool
	cipAreas        map[instKey]map[string]bool
	cipTitles       map[string]string
}

// NewIndex builds the router's reference snapshot. disciplines must already be
// restricted to active, non-administrative departments; departments must be
// restricted to active ones. cipTitles maps a two-character CIP area to its
// display title.
func NewIndex(disciplines []model.Discipline, departments []model.Department, cipTitles map[string]string) *Index {
	idx := &Index{
		disciplines:     make(map[instKey]model.Discipline, len(disciplines)),
		departmentNames: make(map[instKey]string, len(departments)),
		cunySubjects:    make(map[instKey]map[string]bool),
		cipAreas:        make(map[instKey]map[string]bool),
		cipTitles:       cipTitles,
	}
	for _, d := range disciplines {
		idx.disciplines[instKey{d.Institution, d.Discipline}] = d
		addToSet(idx.cunySubjects, instKey{d.Institution, d.CUNYSubject}, d.Department)
		if area := d.CIPArea(); area != "" {
			addToSet(idx.cipAreas, instKey{d.Institution, area}, d.Department)
		}
	}
	for _, d := range departments {
		idx.departmentNames[instKey{d.Institution, d.Department}] = d.Name
	}
	return idx
}

func addToSet(m map[instKey]map[string]bool, k instKey, department string) {
	if m[k] == nil {
		m[k] = make(map[string]bool)
	}
	m[k][department] = true
}

// Discipline looks up the discipline record for a discipline code at an
// institution.
func (idx *Index) Discipline(institution, discipline string) (model.Discipline, bool) {
	d, ok := idx.disciplines[instKey{institution, discipline}]
	return d, ok
}

// DepartmentName returns the display name of an active department.
func (idx *Index) DepartmentName(institution, department string) (string, bool) {
	name, ok := idx.departmentNames[instKey{institution, department}]
	return name, ok
}

// departmentsForSubject returns the departments offering courses with the
// given CUNY subject at an institution.
func (idx *Index) departmentsForSubject(institution, subject string) map[string]bool {
	return idx.cunySubjects[instKey{institution, subject}]
}

// departmentsForCIPArea returns the departments offering courses in the given
// CIP code area at an institution.
func (idx *Index) departmentsForCIPArea(institution, area string) map[string]bool {
	return idx.cipAreas[instKey{institution, area}]
}

// cipAreaLabel renders a CIP area for detail strings, with its title when one
// is known: "26 (Biological and Biomedical Sciences)".
func (idx *Index) cipAreaLabel(area string) string {
	if title, ok := idx.cipTitles[area]; ok {
		return area + " (" + title + ")"
	}
	return area
}

// sorted returns a set's members in deterministic order.
func sorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
