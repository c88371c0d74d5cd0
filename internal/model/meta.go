package model

// CourseID identifies a catalog entry. OfferNbr disambiguates multiple catalog
// entries for what is logically the same course.
type CourseID struct {
	ID       int
	OfferNbr int
}

// CourseMeta is the catalog snapshot of one course as the router and the
// statistics reports see it. A course referenced by a rule but no longer found
// in the catalog is represented with IsUnknown set, not treated as an error.
type CourseMeta struct {
	Institution   string
	Discipline    string
	CatalogNumber string
	CUNYSubject   string
	IsUndergrad   bool
	IsActive      bool
	IsMesg        bool
	IsBkcr        bool
	IsUnknown     bool
}

// CourseString is the "DISCIPLINE CATALOG#" display form.
func (m CourseMeta) CourseString() string {
	return m.Discipline + " " + m.CatalogNumber
}

// Admin reports whether the course is an administrative placeholder rather
// than a real course equivalency.
func (m CourseMeta) Admin() bool {
	return m.IsMesg || m.IsBkcr
}

// Flags renders the settings that make a course "interesting" in reports.
// Undergraduate, active, real-credit courses return the empty string.
//
//	G  graduate
//	I  inactive
//	M  message course
//	B  blanket credit
//	?  not found in the current catalog
func (m CourseMeta) Flags() string {
	var s string
	if !m.IsUndergrad {
		s += "G"
	}
	if !m.IsActive {
		s += "I"
	}
	if m.IsMesg {
		s += "M"
	}
	if m.IsBkcr {
		s += "B"
	}
	if m.IsUnknown {
		s += "?"
	}
	return s
}

// UnknownCourse builds the placeholder metadata for a course that a rule
// references but the catalog no longer contains.
func UnknownCourse(institution string) CourseMeta {
	return CourseMeta{
		Institution:   institution,
		Discipline:    "Unknown",
		CatalogNumber: "Unknown",
		IsUnknown:     true,
	}
}
