package mps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumns(t *testing.T) {
	input := strings.Join([]string{
		"NAME          TEST",
		"ROWS",
		" N  COST",
		" L  ROW1",
		"COLUMNS",
		"    X1        ROW1      1.0   COST      2.0",
		"    X2        ROW1      2.0",
		"RHS",
		"    RHS       ROW1      10.0",
		"ENDATA",
	}, "\n")

	m, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)

	// Entries group by the first field of each line; the remaining fields
	// alternate name/value and only the names are kept.
	require.Equal(t, 2, m.ConstraintCount())
	_, ok := m.Lookup("ROW1")
	assert.True(t, ok)
	_, ok = m.Lookup("COST")
	assert.True(t, ok)
}

func TestParseRowAccumulation(t *testing.T) {
	// Same row name across multiple lines accumulates into one relation.
	input := strings.Join([]string{
		"COLUMNS",
		"    ROW1      X1        1.0   X2        2.0",
		"    ROW1      X3        3.0",
		"    ROW2      X1        1.0",
	}, "\n")

	m, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 2, m.ConstraintCount())
	first := m.Constraints()[0]
	require.Len(t, first.Variables, 3)
	assert.Equal(t, "X1", m.Variable(first.Variables[0]).ID)
	assert.Equal(t, "X2", m.Variable(first.Variables[1]).ID)
	assert.Equal(t, "X3", m.Variable(first.Variables[2]).ID)

	second := m.Constraints()[1]
	require.Len(t, second.Variables, 1)
	assert.Equal(t, "X1", m.Variable(second.Variables[0]).ID)
}

func TestParseMarkerLinesIgnored(t *testing.T) {
	input := strings.Join([]string{
		"COLUMNS",
		"    MARKER1   'MARKER'  'INTORG'",
		"    ROW1      X1        1.0",
		"    MARKER2   'MARKER'  'INTEND'",
	}, "\n")

	m, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 1, m.ConstraintCount())
	_, ok := m.Lookup("MARKER1")
	assert.False(t, ok)
}

func TestParseStopsAtNextSection(t *testing.T) {
	input := strings.Join([]string{
		"COLUMNS",
		"    ROW1      X1        1.0",
		"RHS",
		"    ROW1      X2        1.0", // after section end, never read
	}, "\n")

	m, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 1, m.ConstraintCount())
	_, ok := m.Lookup("X2")
	assert.False(t, ok)
}

func TestParseIgnoresEverythingBeforeColumns(t *testing.T) {
	input := strings.Join([]string{
		"ROWS",
		" L  ROW1",
		"    ROW1      X1        1.0", // indented but before COLUMNS
	}, "\n")

	m, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 0, m.ConstraintCount())
}

func TestParseBlankAndShortLines(t *testing.T) {
	input := strings.Join([]string{
		"COLUMNS",
		"",
		"    LONELY",
		"    ROW1      X1        1.0",
	}, "\n")

	m, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, m.ConstraintCount())
}

func TestSupports(t *testing.T) {
	p := New()
	assert.True(t, p.Supports("model.mps"))
	assert.True(t, p.Supports("model.mps.gz"))
	assert.True(t, p.Supports("model.MPS.tar.gz"))
	assert.False(t, p.Supports("model.lp"))
	assert.False(t, p.Supports("model.txt"))
}
