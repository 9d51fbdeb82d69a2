package postdoc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var countPattern = regexp.MustCompile(`^(\d+(?:\.\d*)?|\.\d+)([kmb])?$`)

var countMultipliers = map[string]float64{
	"":  1,
	"k": 1e3,
	"m": 1e6,
	"b": 1e9,
}

// ParseCount parses a displayed counter such as "1.2K", "3M" or "1,234"
// into an integer. Thousands separators are ignored and the magnitude suffix
// is case-insensitive. Empty or non-numeric input yields 0.
func ParseCount(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	m := countPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return int(math.Round(v * countMultipliers[m[2]]))
}

// FormatCount renders a counter for humans: 1.5M, 12.3K or the plain integer
// below one thousand.
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.Itoa(n)
	}
}
