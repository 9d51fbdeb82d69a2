package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/postdoc"
	"gopkg.in/yaml.v3"
)

// Ensure SettingsFile implements postdoc.SettingsStore at compile time.
var _ postdoc.SettingsStore = (*SettingsFile)(nil)

// SettingsFile stores settings in a single file. Files ending in .toml are
// TOML, anything else is YAML.
type SettingsFile struct {
	Path string
}

// NewSettingsFile returns a SettingsFile at path.
func NewSettingsFile(path string) *SettingsFile {
	return &SettingsFile{Path: path}
}

func (f *SettingsFile) isTOML() bool {
	return strings.EqualFold(filepath.Ext(f.Path), ".toml")
}

// LoadSettings reads the file. A missing file yields empty settings.
func (f *SettingsFile) LoadSettings(ctx context.Context) (postdoc.Settings, error) {
	var s postdoc.Settings

	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return s, nil
	} else if err != nil {
		return s, err
	}

	if f.isTOML() {
		err = toml.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return postdoc.Settings{}, postdoc.Errorf(postdoc.EINVALID, "parse settings %s: %v", f.Path, err)
	}

	if err := s.Validate(); err != nil {
		return postdoc.Settings{}, err
	}
	return s, nil
}

// SaveSettings replaces the file contents, creating parent directories as
// needed. The file is written to a temporary path and renamed into place.
func (f *SettingsFile) SaveSettings(ctx context.Context, s postdoc.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if f.isTOML() {
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return err
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}
	tmp := f.Path + TempSuffix
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}
