// Package mps parses the column-oriented MPS file format.
//
// Only the COLUMNS section matters for visualization: each non-zero entry
// names a row (constraint) and a column (variable), so collecting the
// variables per row yields the same membership relations the LP parser
// produces. Everything outside COLUMNS is ignored.
package mps

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mipviz/mipviz/pkg/model"
)

const maxLineBytes = 4 * 1024 * 1024

// Parser reads MPS format input.
type Parser struct{}

// New returns an MPS parser.
func New() *Parser { return &Parser{} }

// Type returns "mps".
func (p *Parser) Type() string { return "mps" }

// Supports reports whether filename looks like an MPS file, including the
// compressed variants handled by pkg/inputs.
func (p *Parser) Supports(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".mps") ||
		strings.HasSuffix(lower, ".mps.gz") ||
		strings.HasSuffix(lower, ".mps.tar.gz")
}

// Parse scans r for the COLUMNS section and accumulates, per row name, the
// variables that carry a non-zero in that row. Each row becomes exactly one
// constraint relation, in first-encounter order.
func (p *Parser) Parse(r io.Reader) (*model.Model, error) {
	rows := make(map[string][]string)
	var rowOrder []string
	inColumns := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()

		// The section keyword itself is flush-left and case-sensitive.
		if strings.HasPrefix(line, "COLUMNS") {
			inColumns = true
			continue
		}
		if !inColumns {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		// An unindented line starts the next section; nothing after
		// COLUMNS is of interest.
		if r0, _ := utf8.DecodeRuneInString(line); !unicode.IsSpace(r0) {
			break
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// Integer markers delimit integrality blocks and carry no entries.
		if strings.Contains(fields[1], "MARKER") {
			continue
		}

		row := fields[0]
		if _, seen := rows[row]; !seen {
			rowOrder = append(rowOrder, row)
		}
		// Entries come in (variable, value) pairs; only the variable matters.
		for i := 1; i < len(fields); i += 2 {
			rows[row] = append(rows[row], fields[i])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	m := model.New()
	for _, row := range rowOrder {
		m.CreateConstraintRelation(rows[row])
	}
	return m, nil
}
