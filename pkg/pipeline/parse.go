package pipeline

import (
	"context"
	"time"

	"github.com/mipviz/mipviz/pkg/inputs"
	"github.com/mipviz/mipviz/pkg/model"
	"github.com/mipviz/mipviz/pkg/observability"
	"github.com/mipviz/mipviz/pkg/parse"
)

// ParseInput reads the input file and parses it into a model.
// The format is detected from the file extension before any bytes are read,
// so an unrecognized extension fails fast. Returns the model and the
// detected format type.
func ParseInput(ctx context.Context, opts Options) (*model.Model, string, error) {
	p, err := parse.Detect(opts.Input, Parsers()...)
	if err != nil {
		return nil, "", err
	}

	observability.Pipeline().OnParseStart(ctx, p.Type(), opts.Input)
	start := time.Now()

	m, err := parseFile(opts.Input, p)

	var vars, cons int
	if m != nil {
		vars, cons = m.VariableCount(), m.ConstraintCount()
	}
	observability.Pipeline().OnParseComplete(ctx, p.Type(), opts.Input, vars, cons, time.Since(start), err)
	if err != nil {
		return nil, "", err
	}
	return m, p.Type(), nil
}

func parseFile(path string, p parse.Parser) (*model.Model, error) {
	r, err := inputs.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return p.Parse(r)
}
