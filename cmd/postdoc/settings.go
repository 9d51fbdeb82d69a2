package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/postdoc"
)

// Run executes the settings show command.
func (c *SettingsShowCmd) Run(deps *Dependencies) error {
	opts, err := effectiveOptions(deps.Ctx, deps.Settings, OptionFlags{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "pdfTheme: %s\n", opts.Theme)
	fmt.Fprintf(deps.Stdout, "includeMetrics: %t\n", opts.IncludeMetrics)
	fmt.Fprintf(deps.Stdout, "includeImages: %t\n", opts.IncludeImages)
	fmt.Fprintf(deps.Stdout, "includeFrontmatter: %t\n", opts.IncludeFrontmatter)
	return nil
}

// Run executes the settings set command.
func (c *SettingsSetCmd) Run(deps *Dependencies) error {
	update, key, err := parseSetting(c.Key, c.Value)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	saved, err := deps.Settings.LoadSettings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	if err := deps.Settings.SaveSettings(deps.Ctx, saved.Merge(update)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Set %s = %s\n", key, strings.TrimSpace(c.Value))
	return nil
}

// parseSetting returns a Settings with only key set, and the canonical key.
// Short aliases such as "theme" and "metrics" are accepted.
func parseSetting(key, value string) (postdoc.Settings, string, error) {
	var s postdoc.Settings

	switch strings.ToLower(key) {
	case "pdftheme", "theme":
		theme, err := postdoc.ParseTheme(value)
		if err != nil {
			return s, "", err
		}
		s.PDFTheme = &theme
		return s, "pdfTheme", nil
	case "includemetrics", "metrics":
		v, err := parseBool(key, value)
		s.IncludeMetrics = v
		return s, "includeMetrics", err
	case "includeimages", "images":
		v, err := parseBool(key, value)
		s.IncludeImages = v
		return s, "includeImages", err
	case "includefrontmatter", "frontmatter":
		v, err := parseBool(key, value)
		s.IncludeFrontmatter = v
		return s, "includeFrontmatter", err
	}
	return s, "", postdoc.Errorf(postdoc.EINVALID, "unknown setting %q", key)
}

func parseBool(key, value string) (*bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return nil, postdoc.Errorf(postdoc.EINVALID, "%s must be true or false, got %q", key, value)
	}
	return &v, nil
}
