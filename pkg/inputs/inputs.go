// Package inputs opens problem files as decoded text streams.
//
// Problem files from public benchmark sets (MIPLIB and friends) usually ship
// compressed, so in addition to plain files the package transparently handles
// gzip streams and tar.gz archives containing a single entry. Parsers only
// ever see an io.Reader over the decoded bytes.
package inputs

import (
	"archive/tar"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/mipviz/mipviz/pkg/errors"
)

// Open returns a reader over the decoded contents of the file at path.
// Compression is chosen by extension: ".tar.gz" archives yield their first
// entry, ".gz" streams are gunzipped, anything else is read as-is.
// The caller must close the returned reader.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"):
		rc, err := openTarGz(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(errors.ErrCodeDecompress, err, "read archive %s", path)
		}
		return rc, nil
	case strings.HasSuffix(lower, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(errors.ErrCodeDecompress, err, "gunzip %s", path)
		}
		return &chainCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	default:
		return f, nil
	}
}

// openTarGz positions a reader at the first regular entry of a tar.gz
// archive. Benchmark archives carry exactly one problem file.
func openTarGz(f *os.File) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if err != nil {
			zr.Close()
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg {
			return &chainCloser{Reader: tr, closers: []io.Closer{zr, f}}, nil
		}
	}
}

// chainCloser reads from Reader and closes every underlying layer in order.
type chainCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *chainCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
