package archive

import (
	"os"
	"path/filepath"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSevenZip_KeepsExplicitBinary(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()

	extractor, err := NewSevenZip("/opt/sevenzip/7zz", logger)

	require.NoError(t, err)
	assert.Equal(t, "/opt/sevenzip/7zz", extractor.binary)
}

func TestExtract_ToolFailure(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	extractor, err := NewSevenZip(filepath.Join(t.TempDir(), "missing-7z"), logger)
	require.NoError(t, err)

	_, err = extractor.Extract("sample.msi", "", t.TempDir())

	assert.ErrorContains(t, err, "7z extraction failed")
}

func TestListFiles_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte("a"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	files, err := listFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.bin"),
		filepath.Join(dir, "b.bin"),
	}, files)
}
