package configs

import (
	"bytes"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// SaveTOML encodes data as TOML and writes it to filePath, creating parent
// directories as needed. The file is written with owner-only permissions
// because the user config holds the session token.
func SaveTOML(fs afero.Fs, filePath string, data interface{}) error {
	if err := fs.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	return afero.WriteFile(fs, filePath, buf.Bytes(), 0600)
}

// LoadTOML decodes the TOML file at filePath into data.
func LoadTOML(fs afero.Fs, filePath string, data interface{}) error {
	content, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return err
	}
	_, err = toml.Decode(string(content), data)
	return err
}
