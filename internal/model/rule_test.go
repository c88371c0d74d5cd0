package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleKey(t *testing.T) {
	key, err := ParseRuleKey("QNS01:LEH01:BIOL:1")
	require.NoError(t, err)
	assert.Equal(t, RuleKey{
		SourceInstitution:      "QNS01",
		DestinationInstitution: "LEH01",
		SubjectArea:            "BIOL",
		GroupNumber:            "1",
	}, key)
	assert.Equal(t, "QNS01:LEH01:BIOL:1", key.String())
}

func TestParseRuleKeyMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"QNS01",
		"QNS01:LEH01:BIOL",
		"QNS01:LEH01:BIOL:1:extra",
		"QNS01::BIOL:1",
		":LEH01:BIOL:1",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseRuleKey(s)
			assert.Error(t, err)
		})
	}
}

func TestSourceCourseLabel(t *testing.T) {
	c := SourceCourse{Discipline: "BIOL", CatalogNumber: "101"}
	assert.Equal(t, "BIOL 101", c.Label())
}
