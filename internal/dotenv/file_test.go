package dotenv

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/envdock/edk/internal/errors"
)

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(afero.NewMemMapFs(), "/work/.env")
	assert.True(t, errors.Is(err, kerrors.ErrFileNotFound))
}

func TestWriteFileThenRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))

	require.NoError(t, WriteFile(fs, "/work/.env", SecretMap{"A": "1", "B": "2"}))

	raw, err := afero.ReadFile(fs, "/work/.env")
	require.NoError(t, err)
	assert.Equal(t, "A=1\nB=2", string(raw))

	info, err := fs.Stat("/work/.env")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	got, err := ReadFile(fs, "/work/.env")
	require.NoError(t, err)
	assert.Equal(t, SecretMap{"A": "1", "B": "2"}, got)
}

func TestWriteFileFailureIsIOError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := WriteFile(fs, "/work/.env", SecretMap{"A": "1"})
	var ioErr *kerrors.IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "/work/.env", ioErr.Path)
}
