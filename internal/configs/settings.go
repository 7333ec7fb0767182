package configs

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under the XDG base directories.
	AppDirName = "envdock"

	// DefaultAPIURL is the secrets service used when nothing else is configured.
	DefaultAPIURL = "https://envdock.cloud/api"

	// EnvConfigDir overrides the config directory.
	EnvConfigDir = "ENVDOCK_CONFIG_DIR"
	// EnvDataDir overrides the data directory holding the local audit trail.
	EnvDataDir = "ENVDOCK_DATA_DIR"
	// EnvAPIURL overrides the configured API base URL.
	EnvAPIURL = "ENVDOCK_API_URL"
)

type UserSettings struct {
	ConfigDir string
	DataDir   string
}

// UserEnvdockSettings holds the resolved per-user directories. Tests replace
// it to point at temporary directories.
var UserEnvdockSettings *UserSettings

func init() {
	UserEnvdockSettings = DefaultUserSettings()
}

// DefaultUserSettings resolves directories from the environment overrides,
// falling back to the XDG base directories.
func DefaultUserSettings() *UserSettings {
	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	dataDir := os.Getenv(EnvDataDir)
	if dataDir == "" {
		dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	return &UserSettings{
		ConfigDir: configDir,
		DataDir:   dataDir,
	}
}

// ConfigPath returns the path of the global user config file.
func (s *UserSettings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, "config.toml")
}

// AuditLogPath returns the path of the local audit trail.
func (s *UserSettings) AuditLogPath() string {
	return filepath.Join(s.DataDir, "audit.jsonl")
}

// ResolveAPIURL picks the API base URL: explicit flag, then ENVDOCK_API_URL,
// then the stored api_url, then DefaultAPIURL.
func ResolveAPIURL(flagValue string, store Store) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvAPIURL); env != "" {
		return env
	}
	if store != nil {
		if stored, err := store.Get(KeyAPIURL); err == nil && stored != "" {
			return stored
		}
	}
	return DefaultAPIURL
}
