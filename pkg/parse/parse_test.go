package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mipviz/mipviz/pkg/errors"
	"github.com/mipviz/mipviz/pkg/parse"
	"github.com/mipviz/mipviz/pkg/parse/lp"
	"github.com/mipviz/mipviz/pkg/parse/mps"
)

func formats() []parse.Parser {
	return []parse.Parser{lp.New(), mps.New()}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path     string
		wantType string
	}{
		{"model.lp", "lp"},
		{"model.lp.gz", "lp"},
		{"model.lp.tar.gz", "lp"},
		{"/data/huge.mps", "mps"},
		{"huge.mps.gz", "mps"},
		{"huge.mps.tar.gz", "mps"},
	}

	for _, tt := range tests {
		p, err := parse.Detect(tt.path, formats()...)
		require.NoErrorf(t, err, "Detect(%q)", tt.path)
		assert.Equal(t, tt.wantType, p.Type())
	}
}

func TestDetectUnknownExtension(t *testing.T) {
	for _, path := range []string{"model.txt", "model", "model.gz", "model.sav"} {
		_, err := parse.Detect(path, formats()...)
		require.Errorf(t, err, "Detect(%q)", path)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	}
}
