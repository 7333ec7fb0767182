package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/spf13/afero"
)

// UserConfig is the global, per-user CLI state.
type UserConfig struct {
	Token  string `toml:"token,omitempty"`
	APIURL string `toml:"api_url,omitempty"`
	User   User   `toml:"user"`
}

type User struct {
	Name  string `toml:"name,omitempty"`
	Email string `toml:"email,omitempty"`
}

// Key names one field of UserConfig.
type Key string

const (
	KeyToken     Key = "token"
	KeyAPIURL    Key = "api_url"
	KeyUserName  Key = "user.name"
	KeyUserEmail Key = "user.email"
)

// Keys lists every addressable key in display order.
var Keys = []Key{KeyUserName, KeyUserEmail, KeyAPIURL, KeyToken}

// Store is a namespaced persistent key-value store for the user config.
type Store interface {
	Get(key Key) (string, error)
	Set(key Key, value string) error
	Delete(key Key) error
	Clear() error
}

// UnknownKeyError reports a key that does not name a UserConfig field.
type UnknownKeyError struct {
	Key Key
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q", string(e.Key))
}

func (c *UserConfig) field(key Key) (*string, error) {
	switch key {
	case KeyToken:
		return &c.Token, nil
	case KeyAPIURL:
		return &c.APIURL, nil
	case KeyUserName:
		return &c.User.Name, nil
	case KeyUserEmail:
		return &c.User.Email, nil
	default:
		return nil, &UnknownKeyError{Key: key}
	}
}

// Get returns the value stored under key.
func (c *UserConfig) Get(key Key) (string, error) {
	f, err := c.field(key)
	if err != nil {
		return "", err
	}
	return *f, nil
}

// Set stores value under key.
func (c *UserConfig) Set(key Key, value string) error {
	f, err := c.field(key)
	if err != nil {
		return err
	}
	*f = value
	return nil
}

// FileStore persists the user config as TOML on an afero filesystem.
type FileStore struct {
	fs   afero.Fs
	path string

	// Warnf, when set, is told once that the config file could not be decoded.
	Warnf  func(format string, args ...any)
	warned bool
}

// NewFileStore returns a store backed by the TOML file at path.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the whole config. A missing file yields an empty config, and so
// does a file that is not valid TOML: the next Set rewrites it and Clear
// removes it.
func (s *FileStore) Load() (*UserConfig, error) {
	config := &UserConfig{}

	if _, err := s.fs.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err := LoadTOML(s.fs, s.path, config); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
		if s.Warnf != nil && !s.warned {
			s.warned = true
			s.Warnf("Ignoring unreadable config file %s: %v", s.path, err)
		}
		return &UserConfig{}, nil
	}

	return config, nil
}

func (s *FileStore) save(config *UserConfig) error {
	if err := SaveTOML(s.fs, s.path, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

func (s *FileStore) Get(key Key) (string, error) {
	config, err := s.Load()
	if err != nil {
		return "", err
	}
	return config.Get(key)
}

func (s *FileStore) Set(key Key, value string) error {
	config, err := s.Load()
	if err != nil {
		return err
	}
	if err := config.Set(key, value); err != nil {
		return err
	}
	return s.save(config)
}

func (s *FileStore) Delete(key Key) error {
	return s.Set(key, "")
}

// Clear removes the config file entirely.
func (s *FileStore) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove user config: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu     sync.Mutex
	config UserConfig
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(key Key) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config.Get(key)
}

func (m *MemoryStore) Set(key Key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config.Set(key, value)
}

func (m *MemoryStore) Delete(key Key) error {
	return m.Set(key, "")
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = UserConfig{}
	return nil
}

// LoadUser reads the stored identity from any Store.
func LoadUser(s Store) (User, error) {
	name, err := s.Get(KeyUserName)
	if err != nil {
		return User{}, err
	}
	email, err := s.Get(KeyUserEmail)
	if err != nil {
		return User{}, err
	}
	return User{Name: name, Email: email}, nil
}

// SaveSession stores a token and identity in one pass.
func SaveSession(s Store, token string, user User) error {
	if err := s.Set(KeyToken, token); err != nil {
		return err
	}
	if err := s.Set(KeyUserName, user.Name); err != nil {
		return err
	}
	return s.Set(KeyUserEmail, user.Email)
}
