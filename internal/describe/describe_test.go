package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transfers/internal/model"
)

var testNames = InstitutionNames{
	"QNS01": "Queens College",
	"LEH01": "Lehman College",
}

func testKey() model.RuleKey {
	return model.RuleKey{
		SourceInstitution:      "QNS01",
		DestinationInstitution: "LEH01",
		SubjectArea:            "BIOL",
		GroupNumber:            "1",
	}
}

func srcCourse(id int, disc, catalog string, catNum, credits, minGPA, maxGPA float64) model.SourceCourse {
	return model.SourceCourse{
		CourseID:      id,
		Discipline:    disc,
		CatalogNumber: catalog,
		CatNum:        catNum,
		MinCredits:    credits,
		MaxCredits:    credits,
		MinGPA:        minGPA,
		MaxGPA:        maxGPA,
	}
}

func dstCourse(id int, disc, catalog string, catNum, credits float64, bkcr bool) model.DestinationCourse {
	return model.DestinationCourse{
		CourseID:        id,
		Discipline:      disc,
		CatalogNumber:   catalog,
		CatNum:          catNum,
		TransferCredits: credits,
		IsBkcr:          bkcr,
	}
}

func TestRuleBlanketCreditMatchesSendingSide(t *testing.T) {
	rule := model.TransferRule{
		Key: testKey(),
		SourceCourses: []model.SourceCourse{
			srcCourse(2, "BIOL", "102", 102, 4.0, 0.0, 4.3),
			srcCourse(1, "BIOL", "101", 101, 3.0, 0.0, 4.3),
		},
		DestinationCourses: []model.DestinationCourse{
			dstCourse(10, "BIO", "226", 226, 0.0, true),
		},
	}

	got, err := Rule(rule, testNames)
	require.NoError(t, err)
	assert.Equal(t,
		"Passing grade in BIOL 101 and BIOL 102 at Queens College (7.0 cr) transfers to Lehman College as BIO-226 (7.0 cr)",
		got)
}

func TestRuleGradeGroupsOrderedAscending(t *testing.T) {
	rule := model.TransferRule{
		Key: testKey(),
		SourceCourses: []model.SourceCourse{
			srcCourse(1, "MATH", "201", 201, 3.0, 2.0, 4.3),
			srcCourse(2, "MATH", "101", 101, 3.0, 0.0, 4.3),
		},
		DestinationCourses: []model.DestinationCourse{
			dstCourse(10, "MATH", "999", 999, 6.0, false),
		},
	}

	got, err := Rule(rule, testNames)
	require.NoError(t, err)
	assert.Equal(t,
		"Passing grade in MATH 101 and C or above in MATH 201 at Queens College (6.0 cr) transfers to Lehman College as MATH-999 (6.0 cr)",
		got)
}

func TestRuleReceivingGroupedByDiscipline(t *testing.T) {
	rule := model.TransferRule{
		Key: testKey(),
		SourceCourses: []model.SourceCourse{
			srcCourse(1, "BIOL", "240", 240, 5.0, 2.0, 4.3),
		},
		DestinationCourses: []model.DestinationCourse{
			dstCourse(12, "CHE", "201", 201, 4.0, false),
			dstCourse(10, "BIO", "101", 101, 3.0, false),
			dstCourse(11, "BIO", "102", 102, 3.0, false),
		},
	}

	got, err := Rule(rule, testNames)
	require.NoError(t, err)
	assert.Equal(t,
		"C or above in BIOL 240 at Queens College (5.0 cr) transfers to Lehman College as BIO-101102 and CHE-201 (10.0 cr)",
		got)
}

func TestRuleCreditRange(t *testing.T) {
	rule := model.TransferRule{
		Key: testKey(),
		SourceCourses: []model.SourceCourse{
			{
				CourseID:      1,
				Discipline:    "BIOL",
				CatalogNumber: "290",
				CatNum:        290,
				MinCredits:    1.0,
				MaxCredits:    4.0,
				MinGPA:        0.0,
				MaxGPA:        4.3,
			},
		},
		DestinationCourses: []model.DestinationCourse{
			dstCourse(10, "BIO", "290", 290, 0.0, true),
		},
	}

	got, err := Rule(rule, testNames)
	require.NoError(t, err)
	assert.Equal(t,
		"Passing grade in BIOL 290 at Queens College (1.0-4.0 cr) transfers to Lehman College as BIO-290 (1.0 cr)",
		got)
}

func TestRuleIsDeterministic(t *testing.T) {
	rule := model.TransferRule{
		Key: testKey(),
		SourceCourses: []model.SourceCourse{
			srcCourse(3, "BIOL", "103", 103, 3.0, 2.0, 4.3),
			srcCourse(1, "BIOL", "101", 101, 3.0, 0.0, 4.3),
			srcCourse(2, "BIOL", "102", 102, 3.0, 0.0, 4.3),
		},
		DestinationCourses: []model.DestinationCourse{
			dstCourse(11, "CHE", "101", 101, 3.0, false),
			dstCourse(10, "BIO", "101", 101, 3.0, false),
		},
	}

	first, err := Rule(rule, testNames)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Rule(rule, testNames)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRuleErrors(t *testing.T) {
	valid := model.TransferRule{
		Key:                testKey(),
		SourceCourses:      []model.SourceCourse{srcCourse(1, "BIOL", "101", 101, 3.0, 0.0, 4.3)},
		DestinationCourses: []model.DestinationCourse{dstCourse(10, "BIO", "226", 226, 3.0, false)},
	}

	t.Run("empty sending side", func(t *testing.T) {
		rule := valid
		rule.SourceCourses = nil
		_, err := Rule(rule, testNames)
		assert.ErrorIs(t, err, ErrEmptySendingSide)
	})

	t.Run("empty receiving side", func(t *testing.T) {
		rule := valid
		rule.DestinationCourses = nil
		_, err := Rule(rule, testNames)
		assert.ErrorIs(t, err, ErrEmptyReceivingSide)
	})

	t.Run("duplicate sending course", func(t *testing.T) {
		rule := valid
		rule.SourceCourses = []model.SourceCourse{
			srcCourse(1, "BIOL", "101", 101, 3.0, 0.0, 4.3),
			srcCourse(1, "BIOL", "101", 101, 3.0, 0.0, 4.3),
		}
		_, err := Rule(rule, testNames)
		assert.ErrorIs(t, err, ErrDuplicateCourse)
	})

	t.Run("duplicate receiving course", func(t *testing.T) {
		rule := valid
		rule.DestinationCourses = []model.DestinationCourse{
			dstCourse(10, "BIO", "226", 226, 3.0, false),
			dstCourse(10, "BIO", "226", 226, 3.0, false),
		}
		_, err := Rule(rule, testNames)
		assert.ErrorIs(t, err, ErrDuplicateCourse)
	})

	t.Run("unknown institution", func(t *testing.T) {
		_, err := Rule(valid, InstitutionNames{"QNS01": "Queens College"})
		assert.ErrorIs(t, err, ErrUnknownInstitution)
	})

	t.Run("inverted grade range", func(t *testing.T) {
		rule := valid
		rule.SourceCourses = []model.SourceCourse{srcCourse(1, "BIOL", "101", 101, 3.0, 4.0, 2.0)}
		_, err := Rule(rule, testNames)
		assert.Error(t, err)
	})
}
