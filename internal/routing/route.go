package routing

import (
	"errors"
	"fmt"

	"transfers/internal/describe"
	"transfers/internal/model"
)

// AdminLabel is the external rendering of an unresolved routing result.
const AdminLabel = "Admin"

// ErrNoReceivingCourses marks a rule with an empty receiving side, which is a
// data error: every rule must award something.
var ErrNoReceivingCourses = errors.New("rule has no receiving courses")

// Result is the routing outcome for one rule. Department is empty when no
// single department could be determined; Detail always explains how the
// department was chosen, or why none could be.
type Result struct {
	RuleKey    string
	Department string
	Detail     string
}

// Resolved reports whether a single responsible department was determined.
func (r Result) Resolved() bool { return r.Department != "" }

// Label renders the department for reports: the department code, or the
// administrative sentinel when unresolved.
func (r Result) Label() string {
	if r.Resolved() {
		return r.Department
	}
	return AdminLabel
}

func resolved(ruleKey, department, detail string) Result {
	return Result{RuleKey: ruleKey, Department: department, Detail: detail}
}

func unresolved(ruleKey, detail string) Result {
	return Result{RuleKey: ruleKey, Detail: detail}
}

// Route determines which department at the destination institution should
// review the rule. The receiving side is partitioned into administrative
// placeholders (message and blanket-credit courses) and real courses; real
// courses are routed by their discipline's owning department, and a fully
// administrative receiving side falls back to matching the sending side's
// CUNY subjects, then CIP code areas.
func Route(ruleKey string, receiving, sending []model.CourseMeta, idx *Index) (Result, error) {
	key, err := model.ParseRuleKey(ruleKey)
	if err != nil {
		return Result{}, err
	}
	if len(receiving) == 0 {
		return Result{}, fmt.Errorf("%s: %w", ruleKey, ErrNoReceivingCourses)
	}
	dest := key.DestinationInstitution

	var adminCourses, realCourses []model.CourseMeta
	for _, c := range receiving {
		if c.Admin() {
			adminCourses = append(adminCourses, c)
		} else {
			realCourses = append(realCourses, c)
		}
	}

	if len(realCourses) > 0 {
		return routeReal(ruleKey, dest, realCourses, idx), nil
	}
	return routeAdmin(ruleKey, dest, adminCourses, sending, idx), nil
}

// routeReal routes by the disciplines of the real receiving courses. One
// resolvable department settles the rule even when administrative courses are
// also present.
func routeReal(ruleKey, dest string, courses []model.CourseMeta, idx *Index) Result {
	disciplines := make(map[string]bool)
	departments := make(map[string]bool)
	for _, c := range courses {
		disciplines[c.Discipline] = true
		if d, ok := idx.Discipline(dest, c.Discipline); ok {
			departments[d.Department] = true
		}
	}

	switch len(departments) {
	case 0:
		// Rare but observed: "real" courses not offered by any department.
		return unresolved(ruleKey, "No department for "+describe.JoinList(sorted(disciplines), "or"))
	case 1:
		return resolveOne(ruleKey, dest, sorted(departments)[0], idx)
	default:
		return unresolved(ruleKey,
			"Multiple receiving departments: "+describe.JoinList(sorted(departments), "and"))
	}
}

// resolveOne finalizes a single-department outcome, falling back to the
// sentinel when the department is not among the active department names.
func resolveOne(ruleKey, dest, department string, idx *Index) Result {
	name, ok := idx.DepartmentName(dest, department)
	if !ok {
		return unresolved(ruleKey, department+" not found")
	}
	return resolved(ruleKey, department, name)
}

// routeAdmin handles a receiving side made up entirely of administrative
// placeholder courses.
func routeAdmin(ruleKey, dest string, adminCourses, sending []model.CourseMeta, idx *Index) Result {
	// An administrative course can still carry a real academic discipline
	// ("BIOL 499" tagged blanket credit).
	departments := make(map[string]bool)
	for _, c := range adminCourses {
		if d, ok := idx.Discipline(dest, c.Discipline); ok {
			departments[d.Department] = true
		}
	}
	if len(departments) == 1 {
		return resolveOne(ruleKey, dest, sorted(departments)[0], idx)
	}

	return routeBySendingSubjects(ruleKey, dest, sending, idx)
}

// routeBySendingSubjects matches the sending side's CUNY subjects against the
// departments offering those subjects at the destination, then falls back to
// CIP code areas.
func routeBySendingSubjects(ruleKey, dest string, sending []model.CourseMeta, idx *Index) Result {
	subjects := make(map[string]bool)
	for _, c := range sending {
		if c.CUNYSubject != "" {
			subjects[c.CUNYSubject] = true
		}
	}

	departments := make(map[string]bool)
	matchedSubjects := make(map[string]bool)
	for subject := range subjects {
		for department := range idx.departmentsForSubject(dest, subject) {
			departments[department] = true
			matchedSubjects[subject] = true
		}
	}
	subjectStr := describe.JoinList(sorted(subjects), "or")

	switch len(departments) {
	case 1:
		department := sorted(departments)[0]
		return resolved(ruleKey, department,
			fmt.Sprintf("Offers courses with same CUNY subject (%s)",
				describe.JoinList(sorted(matchedSubjects), "and")))
	case 0:
		return routeByCIPArea(ruleKey, dest, subjectStr, sending, idx)
	default:
		return unresolved(ruleKey,
			fmt.Sprintf("%s offer courses in %s",
				describe.JoinList(sorted(departments), "and"), subjectStr))
	}
}

// routeByCIPArea is the last fallback: match the sending disciplines' CIP code
// areas against the destination's offerings. A hit here is noted as an area
// match, not an exact subject match.
func routeByCIPArea(ruleKey, dest, subjectStr string, sending []model.CourseMeta, idx *Index) Result {
	areas := make(map[string]bool)
	for _, c := range sending {
		if d, ok := idx.Discipline(c.Institution, c.Discipline); ok {
			if area := d.CIPArea(); area != "" {
				areas[area] = true
			}
		}
	}

	labels := make([]string, 0, len(areas))
	for _, area := range sorted(areas) {
		labels = append(labels, idx.cipAreaLabel(area))
	}
	areaStr := describe.JoinList(labels, "or")

	departments := make(map[string]bool)
	for area := range areas {
		for department := range idx.departmentsForCIPArea(dest, area) {
			departments[department] = true
		}
	}

	switch len(departments) {
	case 0:
		if len(areas) > 0 {
			return unresolved(ruleKey,
				fmt.Sprintf("No department found for CUNY subject %s or CIP code area %s",
					subjectStr, areaStr))
		}
		return unresolved(ruleKey,
			fmt.Sprintf("No department found for CUNY subject %s and no CIP code area available for matching",
				subjectStr))
	case 1:
		department := sorted(departments)[0]
		return resolved(ruleKey, department,
			fmt.Sprintf("No department found for CUNY subject %s, but %s offers courses in CIP code area %s",
				subjectStr, department, areaStr))
	default:
		return unresolved(ruleKey,
			fmt.Sprintf("No department found for CUNY subject %s, but %s offer courses in CIP code area %s",
				subjectStr, describe.JoinList(sorted(departments), "and"), areaStr))
	}
}
