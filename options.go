package postdoc

import (
	"context"
	"strings"
)

// Theme selects the color palette of the printable HTML document.
type Theme string

// Theme constants.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", Errorf(EINVALID, "unknown theme %q (want light or dark)", s)
}

// Options controls document assembly.
type Options struct {
	Theme              Theme
	IncludeMetrics     bool
	IncludeImages      bool
	IncludeFrontmatter bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Theme:              ThemeLight,
		IncludeMetrics:     true,
		IncludeImages:      true,
		IncludeFrontmatter: true,
	}
}

// Settings is a partial set of options as stored by a settings store.
// Nil fields are unset and leave the underlying option untouched.
type Settings struct {
	PDFTheme           *Theme `json:"pdfTheme,omitempty" yaml:"pdfTheme,omitempty" toml:"pdfTheme,omitempty"`
	IncludeMetrics     *bool  `json:"includeMetrics,omitempty" yaml:"includeMetrics,omitempty" toml:"includeMetrics,omitempty"`
	IncludeImages      *bool  `json:"includeImages,omitempty" yaml:"includeImages,omitempty" toml:"includeImages,omitempty"`
	IncludeFrontmatter *bool  `json:"includeFrontmatter,omitempty" yaml:"includeFrontmatter,omitempty" toml:"includeFrontmatter,omitempty"`
}

// Apply merges the set fields of s over opts.
func (s Settings) Apply(opts Options) Options {
	if s.PDFTheme != nil {
		opts.Theme = *s.PDFTheme
	}
	if s.IncludeMetrics != nil {
		opts.IncludeMetrics = *s.IncludeMetrics
	}
	if s.IncludeImages != nil {
		opts.IncludeImages = *s.IncludeImages
	}
	if s.IncludeFrontmatter != nil {
		opts.IncludeFrontmatter = *s.IncludeFrontmatter
	}
	return opts
}

// Merge returns s with every field set in o overriding it.
func (s Settings) Merge(o Settings) Settings {
	if o.PDFTheme != nil {
		s.PDFTheme = o.PDFTheme
	}
	if o.IncludeMetrics != nil {
		s.IncludeMetrics = o.IncludeMetrics
	}
	if o.IncludeImages != nil {
		s.IncludeImages = o.IncludeImages
	}
	if o.IncludeFrontmatter != nil {
		s.IncludeFrontmatter = o.IncludeFrontmatter
	}
	return s
}

// Validate returns an error if a set field holds an invalid value.
func (s Settings) Validate() error {
	if s.PDFTheme != nil {
		if _, err := ParseTheme(string(*s.PDFTheme)); err != nil {
			return err
		}
	}
	return nil
}

// SettingsStore persists user settings.
type SettingsStore interface {
	// LoadSettings returns the stored settings.
	// A missing store yields empty settings, not an error.
	LoadSettings(ctx context.Context) (Settings, error)

	// SaveSettings replaces the stored settings.
	SaveSettings(ctx context.Context, s Settings) error
}
