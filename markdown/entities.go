package markdown

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var entityPattern = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z]+);`)

var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"nbsp":   " ",
	"mdash":  "—",
	"ndash":  "–",
	"hellip": "...",
	"copy":   "(c)",
	"reg":    "(R)",
	"trade":  "(TM)",
}

// decodeEntity resolves one entity reference. Unknown names and invalid
// code points are left as written. Every reference is decoded exactly
// once, so "&amp;lt;" becomes "&lt;" rather than "<".
func decodeEntity(ref, name string) string {
	if v, ok := namedEntities[name]; ok {
		return v
	}
	if !strings.HasPrefix(name, "#") {
		return ref
	}

	digits, base := name[1:], 10
	if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
		digits, base = digits[1:], 16
	}
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n <= 0 || !utf8.ValidRune(rune(n)) {
		return ref
	}
	return string(rune(n))
}
