package model

import (
	"fmt"
	"strings"
)

// RuleKey identifies a transfer rule by its composite key. The external form is
// colon-delimited: source_institution:destination_institution:subject_area:group_number.
type RuleKey struct {
	SourceInstitution      string
	DestinationInstitution string
	SubjectArea            string
	GroupNumber            string
}

// ParseRuleKey parses the colon-delimited external form of a rule key.
func ParseRuleKey(s string) (RuleKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return RuleKey{}, fmt.Errorf("malformed rule key %q: want 4 colon-delimited parts, got %d", s, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return RuleKey{}, fmt.Errorf("malformed rule key %q: empty part %d", s, i+1)
		}
	}
	return RuleKey{
		SourceInstitution:      parts[0],
		DestinationInstitution: parts[1],
		SubjectArea:            parts[2],
		GroupNumber:            parts[3],
	}, nil
}

func (k RuleKey) String() string {
	return k.SourceInstitution + ":" + k.DestinationInstitution + ":" + k.SubjectArea + ":" + k.GroupNumber
}

// SourceCourse is one course on the sending side of a transfer rule, as stored in
// the source_courses table joined with its discipline record.
type SourceCourse struct {
	CourseID       int
	OfferCount     int
	Discipline     string
	CatalogNumber  string
	DisciplineName string
	CUNYSubject    string
	CatNum         float64
	MinCredits     float64
	MaxCredits     float64
	MinGPA         float64
	MaxGPA         float64
}

// Label is the course identifier shown in rule descriptions.
func (c SourceCourse) Label() string {
	return c.Discipline + " " + c.CatalogNumber
}

// DestinationCourse is one course on the receiving side of a transfer rule.
type DestinationCourse struct {
	CourseID        int
	OfferCount      int
	Discipline      string
	CatalogNumber   string
	DisciplineName  string
	CUNYSubject     string
	CatNum          float64
	TransferCredits float64
	CreditSource    string
	IsMesg          bool
	IsBkcr          bool
}

// TransferRule is one rule with its sending and receiving course sets.
type TransferRule struct {
	ID                 int
	Key                RuleKey
	SourceDisciplines  []string
	SourceSubjects     []string
	ReviewStatus       int
	SourceCourses      []SourceCourse
	DestinationCourses []DestinationCourse
}
