package describe

import "strings"

// commaMask protects commas embedded in list items (compound discipline names)
// from the comma-count logic that places the conjunction.
const commaMask = "\x00"

// JoinList joins items into a comma-separated con/disjunction with an oxford
// comma:
//
//	a
//	a and b        a or b
//	a, b, and c    a, b, or c
//
// Items may themselves contain commas; they are preserved verbatim.
func JoinList(items []string, conjunction string) string {
	masked := make([]string, len(items))
	for i, item := range items {
		masked[i] = strings.ReplaceAll(item, ",", commaMask)
	}

	s := strings.Join(masked, ", ")
	switch strings.Count(s, ",") {
	case 0:
		// Zero or one item.
	case 1:
		// Two items: no comma, just the conjunction.
		s = strings.Replace(s, ",", " "+conjunction, 1)
	default:
		last := strings.LastIndex(s, ",") + 1
		s = s[:last] + " " + conjunction + s[last:]
	}
	return strings.ReplaceAll(s, commaMask, ",")
}
