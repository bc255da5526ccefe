// Package lp parses the line-oriented LP file format.
//
// Only the structural content is extracted: every objective or constraint
// row becomes one relation over the variable names it mentions. Operators,
// coefficients, and right-hand sides are discarded by the identifier
// predicate, and anything the parser does not understand is skipped
// silently.
package lp

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mipviz/mipviz/pkg/model"
)

// maxLineBytes bounds the scanner buffer. LP rows can be long (a single
// constraint may list thousands of variables) but are processed one line at
// a time, so memory stays constant per line.
const maxLineBytes = 4 * 1024 * 1024

// section is the parser's position within the file.
type section int

const (
	sectionNone section = iota
	sectionObjective
	sectionConstraint
)

// Keyword sets that open the objective and constraint sections. Headers are
// compared after lower-casing and trimming the full line.
var (
	objectiveKeywords = map[string]bool{
		"minimize": true, "maximize": true,
		"minimum": true, "maximum": true,
		"min": true, "max": true,
	}
	constraintKeywords = map[string]bool{
		"subject to": true, "such that": true,
		"st": true, "s.t.": true,
	}
)

// Parser reads LP format input.
type Parser struct{}

// New returns an LP parser.
func New() *Parser { return &Parser{} }

// Type returns "lp".
func (p *Parser) Type() string { return "lp" }

// Supports reports whether filename looks like an LP file, including the
// compressed variants handled by pkg/inputs.
func (p *Parser) Supports(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".lp") ||
		strings.HasSuffix(lower, ".lp.gz") ||
		strings.HasSuffix(lower, ".lp.tar.gz")
}

// Parse scans r line by line and registers one constraint relation per row
// that yields at least one valid variable token.
func (p *Parser) Parse(r io.Reader) (*model.Model, error) {
	m := model.New()
	current := sectionNone

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()

		// Full-line comments never affect section state.
		if strings.HasPrefix(line, "\\") {
			continue
		}
		stripped := strings.ToLower(strings.TrimSpace(line))
		if stripped == "" {
			continue
		}

		// A line starting with a letter is a section header. Unmatched
		// headers (Bounds, General, End, ...) reset the section so their
		// body rows are ignored.
		if r0, _ := utf8.DecodeRuneInString(line); unicode.IsLetter(r0) {
			switch {
			case objectiveKeywords[stripped]:
				current = sectionObjective
			case constraintKeywords[stripped]:
				current = sectionConstraint
			default:
				current = sectionNone
			}
			continue
		}
		if current != sectionObjective && current != sectionConstraint {
			continue
		}

		// Trailing comment, then the optional "name:" label.
		if i := strings.Index(stripped, "\\"); i >= 0 {
			stripped = stripped[:i]
		}
		if i := strings.Index(stripped, ":"); i >= 0 {
			stripped = stripped[i+1:]
		}

		var vars []string
		for _, w := range strings.Fields(stripped) {
			if IsVariable(w) {
				vars = append(vars, w)
			}
		}
		if len(vars) > 0 {
			m.CreateConstraintRelation(vars)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Characters that disqualify a token from being a variable name.
const (
	forbiddenFirst    = "+-*^<>=()[],:"
	forbiddenAnywhere = "+-*^:"
)

// IsVariable reports whether a token is a usable variable name: 1 to 255
// characters, not starting with a digit or an operator/bracket character,
// and containing no arithmetic operator or colon anywhere.
func IsVariable(word string) bool {
	if len(word) == 0 || len(word) > 255 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(word)
	if unicode.IsDigit(first) {
		return false
	}
	if strings.ContainsRune(forbiddenFirst, first) {
		return false
	}
	return !strings.ContainsAny(word, forbiddenAnywhere)
}
