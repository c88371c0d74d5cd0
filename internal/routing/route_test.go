package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transfers/internal/model"
)

const testRuleKey = "QNS01:LEH01:BIOL:1"

func testIndex() *Index {
	disciplines := []model.Discipline{
		{Institution: "LEH01", Discipline: "BIOL", DisciplineName: "Biology", Department: "BIO", CIPCode: "26.0101", CUNYSubject: "BIO"},
		{Institution: "LEH01", Discipline: "CHEM", DisciplineName: "Chemistry", Department: "CHE", CIPCode: "40.0501", CUNYSubject: "CHM"},
		{Institution: "LEH01", Discipline: "PHYS", DisciplineName: "Physics", Department: "PHY", CIPCode: "40.0801", CUNYSubject: "PHY"},
		{Institution: "QNS01", Discipline: "BIOL", DisciplineName: "Biology", Department: "BIOLOGY", CIPCode: "26.0101", CUNYSubject: "BIO"},
		{Institution: "QNS01", Discipline: "ASTR", DisciplineName: "Astronomy", Department: "ASTRO", CIPCode: "99.0001", CUNYSubject: "AST"},
	}
	departments := []model.Department{
		{Institution: "LEH01", Department: "BIO", Name: "Biological Sciences"},
		{Institution: "LEH01", Department: "CHE", Name: "Chemistry"},
	}
	cipTitles := map[string]string{
		"26": "Biological and Biomedical Sciences",
		"40": "Physical Sciences",
	}
	return NewIndex(disciplines, departments, cipTitles)
}

func receiving(disciplines ...string) []model.CourseMeta {
	courses := make([]model.CourseMeta, len(disciplines))
	for i, d := range disciplines {
		courses[i] = model.CourseMeta{
			Institution:   "LEH01",
			Discipline:    d,
			CatalogNumber: "101",
			IsUndergrad:   true,
			IsActive:      true,
		}
	}
	return courses
}

func bkcrReceiving(disciplines ...string) []model.CourseMeta {
	courses := receiving(disciplines...)
	for i := range courses {
		courses[i].IsBkcr = true
	}
	return courses
}

func sendingCourse(discipline, subject string) model.CourseMeta {
	return model.CourseMeta{
		Institution:   "QNS01",
		Discipline:    discipline,
		CatalogNumber: "101",
		CUNYSubject:   subject,
		IsUndergrad:   true,
		IsActive:      true,
	}
}

func TestRouteSingleRealDiscipline(t *testing.T) {
	got, err := Route(testRuleKey, receiving("BIOL"), nil, testIndex())
	require.NoError(t, err)
	assert.True(t, got.Resolved())
	assert.Equal(t, "BIO", got.Department)
	assert.Equal(t, "BIO", got.Label())
	assert.Equal(t, "Biological Sciences", got.Detail)
}

func TestRouteMultipleRealDepartments(t *testing.T) {
	got, err := Route(testRuleKey, receiving("BIOL", "CHEM"), nil, testIndex())
	require.NoError(t, err)
	assert.False(t, got.Resolved())
	assert.Equal(t, "Admin", got.Label())
	assert.Equal(t, "Multiple receiving departments: BIO and CHE", got.Detail)
}

func TestRouteRealDisciplineWithoutDepartment(t *testing.T) {
	got, err := Route(testRuleKey, receiving("BASKET"), nil, testIndex())
	require.NoError(t, err)
	assert.False(t, got.Resolved())
	assert.Equal(t, "No department for BASKET", got.Detail)
}

func TestRouteInactiveDepartment(t *testing.T) {
	// PHYS maps to the PHY department, which has no active department record.
	got, err := Route(testRuleKey, receiving("PHYS"), nil, testIndex())
	require.NoError(t, err)
	assert.False(t, got.Resolved())
	assert.Equal(t, "Admin", got.Label())
	assert.Equal(t, "PHY not found", got.Detail)
}

func TestRouteRealCourseOutweighsAdmin(t *testing.T) {
	courses := append(bkcrReceiving("BKCR"), receiving("BIOL")...)
	got, err := Route(testRuleKey, courses, nil, testIndex())
	require.NoError(t, err)
	assert.Equal(t, "BIO", got.Department)
}

func TestRouteAdminCourseWithRealDiscipline(t *testing.T) {
	got, err := Route(testRuleKey, bkcrReceiving("BIOL"), nil, testIndex())
	require.NoError(t, err)
	assert.True(t, got.Resolved())
	assert.Equal(t, "BIO", got.Department)
}

func TestRouteAdminBySendingSubject(t *testing.T) {
	sending := []model.CourseMeta{sendingCourse("BIOL", "BIO")}
	got, err := Route(testRuleKey, bkcrReceiving("BKCR"), sending, testIndex())
	require.NoError(t, err)
	assert.True(t, got.Resolved())
	assert.Equal(t, "BIO", got.Department)
	assert.Equal(t, "Offers courses with same CUNY subject (BIO)", got.Detail)
}

func TestRouteAdminBySendingSubjectAmbiguous(t *testing.T) {
	disciplines := []model.Discipline{
		{Institution: "LEH01", Discipline: "BIOL", Department: "BIO", CIPCode: "26.0101", CUNYSubject: "BIO"},
		{Institution: "LEH01", Discipline: "BMED", Department: "HLT", CIPCode: "26.0102", CUNYSubject: "BIO"},
	}
	idx := NewIndex(disciplines, nil, nil)

	sending := []model.CourseMeta{sendingCourse("BIOL", "BIO")}
	got, err := Route(testRuleKey, bkcrReceiving("BKCR"), sending, idx)
	require.NoError(t, err)
	assert.False(t, got.Resolved())
	assert.Equal(t, "BIO and HLT offer courses in BIO", got.Detail)
}

func TestRouteAdminByCIPArea(t *testing.T) {
	// No LEH01 department offers the AAA subject, but the sending discipline's
	// CIP area 26 is offered by exactly one department there.
	sending := []model.CourseMeta{sendingCourse("BIOL", "AAA")}
	got, err := Route(testRuleKey, bkcrReceiving("BKCR"), sending, testIndex())
	require.NoError(t, err)
	assert.True(t, got.Resolved())
	assert.Equal(t, "BIO", got.Department)
	assert.Equal(t,
		"No department found for CUNY subject AAA, but BIO offers courses in CIP code area 26 (Biological and Biomedical Sciences)",
		got.Detail)
}

func TestRouteAdminByCIPAreaAmbiguous(t *testing.T) {
	// CIP area 40 is offered by both CHE and PHY at LEH01.
	sending := []model.CourseMeta{
		{Institution: "LEH01", Discipline: "CHEM", CUNYSubject: "AAA"},
	}
	got, err := Route(testRuleKey, bkcrReceiving("BKCR"), sending, testIndex())
	require.NoError(t, err)
	assert.False(t, got.Resolved())
	assert.Equal(t,
		"No department found for CUNY subject AAA, but CHE and PHY offer courses in CIP code area 40 (Physical Sciences)",
		got.Detail)
}

func TestRouteAdminCIPAreaWithoutMatch(t *testing.T) {
	// CIP area 99 exists on the sending side but nothing at LEH01 offers it.
	sending := []model.CourseMeta{sendingCourse("ASTR", "AST")}
	got, err := Route(testRuleKey, bkcrReceiving("BKCR"), sending, testIndex())
	require.NoError(t, err)
	assert.False(t, got.Resolved())
	assert.Equal(t, "No department found for CUNY subject AST or CIP code area 99", got.Detail)
}

func TestRouteAdminWithoutCIPArea(t *testing.T) {
	// The sending discipline has no discipline record, so no CIP area is known.
	sending := []model.CourseMeta{sendingCourse("MYST", "QQQ")}
	got, err := Route(testRuleKey, bkcrReceiving("BKCR"), sending, testIndex())
	require.NoError(t, err)
	assert.False(t, got.Resolved())
	assert.Equal(t,
		"No department found for CUNY subject QQQ and no CIP code area available for matching",
		got.Detail)
}

func TestRouteEmptyReceivingSide(t *testing.T) {
	_, err := Route(testRuleKey, nil, nil, testIndex())
	assert.ErrorIs(t, err, ErrNoReceivingCourses)
}

func TestRouteMalformedRuleKey(t *testing.T) {
	_, err := Route("QNS01:LEH01:BIOL", receiving("BIOL"), nil, testIndex())
	assert.Error(t, err)
}
