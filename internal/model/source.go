package model

// BlanketSource is a sending course with at least one transfer rule whose
// receiving side awards blanket or message credit, together with those rules.
type BlanketSource struct {
	Course                 CourseID
	SourceInstitution      string
	DestinationInstitution string
	Discipline             string
	CatalogNumber          string
	RuleKeys               []string
}

// CourseString is the "DISCIPLINE CATALOG#" display form.
func (s BlanketSource) CourseString() string {
	return s.Discipline + " " + s.CatalogNumber
}

// RuleFlagAggregate summarizes one rule's receiving side for the BKCR matrix:
// whether every receiving course is a blanket-credit placeholder.
type RuleFlagAggregate struct {
	SourceInstitution      string
	DestinationInstitution string
	AllBkcr                bool
}
