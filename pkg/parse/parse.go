// Package parse defines the parser contract for optimization-problem file
// formats and detects the right parser for a given input path.
//
// Parsers are deliberately permissive: a line that yields no usable variable
// tokens is skipped silently, never reported as an error. The only fatal
// conditions live outside the parsers themselves (unreadable input, unknown
// file extension).
package parse

import (
	"io"
	"path/filepath"

	"github.com/mipviz/mipviz/pkg/errors"
	"github.com/mipviz/mipviz/pkg/model"
)

// Parser reads a problem file and extracts variable/constraint membership.
type Parser interface {
	// Parse consumes decoded text line by line and returns the structural model.
	Parse(r io.Reader) (*model.Model, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the format identifier (e.g., "lp", "mps").
	Type() string
}

// Detect finds a parser that supports the given file path.
// Returns an INVALID_FORMAT error if no parser matches; processing must
// abort before any parsing in that case.
func Detect(path string, parsers ...Parser) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unrecognized file extension: %s", name)
}
