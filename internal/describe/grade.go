// Package describe renders transfer rules as natural-language text: letter-grade
// requirements, oxford-comma lists, and the one-sentence rule description stored
// alongside each rule.
package describe

import (
	"fmt"
	"math"
)

// PassingGrade is the degenerate grade requirement: any passing grade suffices.
const PassingGrade = "any passing grade"

// letters is indexed by round(3*GPA). Positions 0 and 1 are not reachable after
// normalization but keep the table aligned with the GPA scale.
//
//	GPA  3*GPA  Index  Letter
//	4.3   12.9     13      A+
//	4.0   12.0     12      A
//	3.7   11.1     11      A-
//	3.3    9.9     10      B+
//	3.0    9.0      9      B
//	2.7    8.1      8      B-
//	2.3    6.9      7      C+
//	2.0    6.0      6      C
//	1.7    5.1      5      C-
//	1.3    3.9      4      D+
//	1.0    3.0      3      D
//	0.7    2.1      2      D-
var letters = [14]string{"F", "F", "D-", "D", "D+", "C-", "C", "C+", "B-", "B", "B+", "A-", "A", "A+"}

// letter converts a GPA value to its letter grade. Ties round half to even,
// so a GPA of 1.5 (3x = 4.5) reads as D+ rather than C-.
func letter(gpa float64) string {
	i := int(math.RoundToEven(gpa * 3))
	if i < 0 {
		i = 0
	}
	if i >= len(letters) {
		i = len(letters) - 1
	}
	return letters[i]
}

// FormatGrade converts a numeric GPA range to the required grade in
// letter-grade form. GPA values are not represented uniformly across campuses,
// so the range is first put into canonical form: courses only transfer when
// passed, so the practical floor is a D- (0.7), and values above 4.0 are used
// to mean "no upper limit".
//
// A min greater than max is a data error and is rejected, never swapped.
func FormatGrade(minGPA, maxGPA float64) (string, error) {
	if minGPA > maxGPA {
		return "", fmt.Errorf("min gpa %.2f greater than max gpa %.2f", minGPA, maxGPA)
	}

	if minGPA < 1.0 {
		minGPA = 0.7
	}
	if maxGPA > 4.0 {
		maxGPA = 4.0
	}

	switch {
	case minGPA < 1.0 && maxGPA > 3.7:
		return PassingGrade, nil
	case minGPA >= 0.7 && maxGPA >= 3.7:
		return letter(minGPA) + " or above", nil
	case minGPA >= 0.7 && maxGPA < 3.7:
		return "between " + letter(minGPA) + " and " + letter(maxGPA), nil
	case maxGPA < 3.7:
		// Historical branch: unreachable once min is clamped to 0.7, kept in
		// place because campus data variants disagree on the clamp order.
		return "below " + letter(maxGPA), nil
	default:
		return PassingGrade, nil
	}
}
