package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseMetaFlags(t *testing.T) {
	tests := []struct {
		name string
		meta CourseMeta
		want string
	}{
		{"normal course", CourseMeta{IsUndergrad: true, IsActive: true}, ""},
		{"graduate", CourseMeta{IsActive: true}, "G"},
		{"inactive", CourseMeta{IsUndergrad: true}, "I"},
		{"message", CourseMeta{IsUndergrad: true, IsActive: true, IsMesg: true}, "M"},
		{"blanket credit", CourseMeta{IsUndergrad: true, IsActive: true, IsBkcr: true}, "B"},
		{"inactive blanket credit", CourseMeta{IsUndergrad: true, IsBkcr: true}, "IB"},
		{"everything", CourseMeta{IsMesg: true, IsBkcr: true, IsUnknown: true}, "GIMB?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.Flags())
		})
	}
}

func TestCourseMetaAdmin(t *testing.T) {
	assert.False(t, CourseMeta{IsUndergrad: true, IsActive: true}.Admin())
	assert.True(t, CourseMeta{IsMesg: true}.Admin())
	assert.True(t, CourseMeta{IsBkcr: true}.Admin())
}

func TestUnknownCourse(t *testing.T) {
	m := UnknownCourse("LEH01")
	assert.Equal(t, "LEH01", m.Institution)
	assert.Equal(t, "Unknown Unknown", m.CourseString())
	assert.True(t, m.IsUnknown)
	assert.Contains(t, m.Flags(), "?")
}
