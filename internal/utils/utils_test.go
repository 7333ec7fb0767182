package utils

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/.env", []byte("OLD=1"), 0o600))

	require.NoError(t, WriteFileAtomic(fs, "/work/.env", []byte("NEW=2"), 0))

	content, err := afero.ReadFile(fs, "/work/.env")
	require.NoError(t, err)
	assert.Equal(t, "NEW=2", string(content))

	info, err := fs.Stat("/work/.env")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String(), "existing mode should be kept")

	entries, err := afero.ReadDir(fs, "/work")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestFileExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/dir", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/file", []byte("x"), 0o644))

	exists, err := FileExists(fs, "/work/file")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = FileExists(fs, "/work/dir")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = FileExists(fs, "/work/missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnvFileIgnored(t *testing.T) {
	tests := []struct {
		name        string
		gitignore   *string
		wantIgnored bool
		wantHasFile bool
	}{
		{"no gitignore", nil, false, false},
		{"ignored", strPtr("node_modules\n.env\n"), true, true},
		{"ignored via pattern", strPtr(".env*\n"), true, true},
		{"only in comment", strPtr("# .env is fine\ndist\n"), false, true},
		{"missing", strPtr("dist\n"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, fs.MkdirAll("/work", 0o755))
			if tt.gitignore != nil {
				require.NoError(t, afero.WriteFile(fs, "/work/.gitignore", []byte(*tt.gitignore), 0o644))
			}

			ignored, has := EnvFileIgnored(fs, "/work")
			assert.Equal(t, tt.wantIgnored, ignored)
			assert.Equal(t, tt.wantHasFile, has)
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana@example.com"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("ana@example"))
	assert.False(t, IsValidEmail("ana example@x.io"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 secret", Pluralize(1, "secret"))
	assert.Equal(t, "0 secrets", Pluralize(0, "secret"))
	assert.Equal(t, "12 secrets", Pluralize(12, "secret"))
}

func strPtr(s string) *string { return &s }
