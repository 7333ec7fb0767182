package link

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/utils"
)

// Store reads and writes the descriptor of one directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a Store for the descriptor in dir.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Path returns the descriptor's location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Dir returns the linked directory.
func (s *Store) Dir() string {
	return s.dir
}

// IsLinked reports whether the descriptor exists and is valid JSON.
func (s *Store) IsLinked() bool {
	data, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		return false
	}
	_, err = decodeDocument(data)
	return err == nil
}

// Load reads the descriptor. It fails with ErrNotLinked when the file is
// absent and ErrCorruptLink when it is not JSON or lacks projectId.
func (s *Store) Load() (*Descriptor, error) {
	data, err := afero.ReadFile(s.fs, s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kerrors.ErrNotLinked
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCorruptLink, err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCorruptLink, err)
	}

	d := &Descriptor{}
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCorruptLink, err)
	}
	return d, nil
}

// Save replaces the descriptor file as a whole.
func (s *Store) Save(d Descriptor) error {
	data, err := encode(d)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := utils.WriteFileAtomic(s.fs, s.Path(), data, 0o644); err != nil {
		return &kerrors.IOError{Path: s.Path(), Err: err}
	}
	return nil
}

// UpdateField loads the descriptor, sets one attribute and saves it back.
// There is no isolation from concurrent writers; the last write wins.
func (s *Store) UpdateField(field Field, value string) (*Descriptor, error) {
	d, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := d.set(field, value); err != nil {
		return nil, err
	}
	if err := s.Save(*d); err != nil {
		return nil, err
	}
	return d, nil
}

// Remove deletes the descriptor. Only a full reset of local state calls it.
func (s *Store) Remove() error {
	err := s.fs.Remove(s.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &kerrors.IOError{Path: s.Path(), Err: err}
	}
	return nil
}
