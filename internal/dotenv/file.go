package dotenv

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/utils"
)

// DefaultFile is the env file pulled into and pushed from.
const DefaultFile = ".env"

// ReadFile parses the env file at path. A missing file is ErrFileNotFound.
func ReadFile(afs afero.Fs, path string) (SecretMap, error) {
	content, err := afero.ReadFile(afs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, kerrors.ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(content)), nil
}

// WriteFile replaces the env file at path with the serialized map. A new file
// is created owner-only; an existing file keeps its mode.
func WriteFile(afs afero.Fs, path string, m SecretMap) error {
	var perm fs.FileMode = 0o600
	if exists, _ := utils.FileExists(afs, path); exists {
		perm = 0
	}
	if err := utils.WriteFileAtomic(afs, path, []byte(Serialize(m)), perm); err != nil {
		return &kerrors.IOError{Path: path, Err: err}
	}
	return nil
}
