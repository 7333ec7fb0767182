package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteFileAtomic replaces path with data in one step: it writes a temp file
// in the same directory and renames it over the target, so readers see either
// the old content or the new one.
//
// perm is applied to the temp file. If perm is 0, the existing file's mode is
// kept, falling back to 0644.
func WriteFileAtomic(afs afero.Fs, path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := afs.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(afs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = afs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = afs.Chmod(tmpPath, perm)

	// On Windows, renaming over an existing file fails. Remove first (not atomic).
	if err := afs.Rename(tmpPath, path); err != nil {
		_ = afs.Remove(path)
		if err2 := afs.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(afs afero.Fs, path string) (bool, error) {
	info, err := afs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
