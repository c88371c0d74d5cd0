package bkcr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMatrix(t *testing.T) {
	counts := make(map[string]*pairCounts, len(colleges))
	for _, src := range colleges {
		counts[src] = &pairCounts{total: make(map[string]int), allBkcr: make(map[string]int)}
	}
	counts["QNS"].total["LEH"] = 4
	counts["QNS"].allBkcr["LEH"] = 1

	var buf strings.Builder
	writeMatrix(&buf, counts)
	lines := strings.Split(buf.String(), "\n")

	// Header plus three lines per source college, and a trailing newline.
	require.Len(t, lines, 1+3*len(colleges)+1)
	assert.Contains(t, lines[0], "SRC\\DST")
	for _, dst := range colleges {
		assert.Contains(t, lines[0], dst)
	}

	var qns int
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "QNS") {
			qns = i
			break
		}
	}
	require.NotZero(t, qns)

	col := strings.Index(lines[0], "    LEH") // column position of the LEH header
	require.GreaterOrEqual(t, col, 0)
	assert.Equal(t, "      4", lines[qns][col:col+7])
	assert.Equal(t, "      1", lines[qns+1][col:col+7])
	assert.Equal(t, "   25.0", lines[qns+2][col:col+7])

	// Pairs with no rules render as "--" instead of a spurious 0%.
	assert.Contains(t, lines[qns+2], "--")
}

func TestShortCode(t *testing.T) {
	assert.Equal(t, "QNS", shortCode("QNS01"))
	assert.Equal(t, "LEH", shortCode("LEH"))
}
