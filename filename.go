package postdoc

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultFilenameBase is used when a title yields no usable characters.
const DefaultFilenameBase = "x_article"

const maxFilenameRunes = 80

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives a file name from an article title: lowercased, with
// filesystem-unsafe characters removed, whitespace runs turned into
// underscores and truncated to 80 characters, followed by "." and ext.
func Filename(title, ext string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, title)
	name = strings.TrimSpace(name)
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = strings.ToLower(name)

	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes])
	}
	if name == "" {
		name = DefaultFilenameBase
	}
	return name + "." + ext
}
