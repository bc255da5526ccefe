package inputs

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mipviz/mipviz/pkg/errors"
)

const sample = "subject to\n c1: x + y <= 10\n"

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.lp")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.lp.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
}

func TestOpenTarGz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.lp.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	tw := tar.NewWriter(zw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "model.lp",
		Mode:     0644,
		Size:     int64(len(sample)),
		Typeflag: tar.TypeReg,
	}))
	_, err = tw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.lp"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestOpenCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.lp.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip data"), 0644))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDecompress))
}
