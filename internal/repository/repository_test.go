package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTidyCIPTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BIOLOGICAL AND BIOMEDICAL SCIENCES.", "Biological and Biomedical Sciences"},
		{"PHYSICAL SCIENCES.", "Physical Sciences"},
		{"AND RELATED SUPPORT SERVICES", "And Related Support Services"},
		{"history", "History"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tidyCIPTitle(tt.in))
	}
}

func TestSplitColonList(t *testing.T) {
	assert.Equal(t, []string{"BIOL", "CHEM"}, splitColonList(":BIOL:CHEM:"))
	assert.Equal(t, []string{"BIOL"}, splitColonList(":BIOL:"))
	assert.Equal(t, []string{"BIOL"}, splitColonList("BIOL"))
	assert.Nil(t, splitColonList(""))
	assert.Nil(t, splitColonList("::"))
}
