package model

// Discipline maps an (institution, discipline) pair to the department that owns
// it, restricted at load time to active, non-administrative departments.
type Discipline struct {
	Institution    string
	Discipline     string
	DisciplineName string
	Department     string
	CIPCode        string
	CUNYSubject    string
}

// CIPArea is the federal subject area: the first two characters of a CIP code.
func (d Discipline) CIPArea() string {
	if len(d.CIPCode) < 2 {
		return ""
	}
	return d.CIPCode[:2]
}

// Department is an active academic department and its display name.
type Department struct {
	Institution string
	Department  string
	Name        string
}
