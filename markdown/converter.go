package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/postdoc"
)

// Ensure Converter implements postdoc.Converter at compile time.
var _ postdoc.Converter = (*Converter)(nil)

// Stage groups rules. Block rules run before inline rules, which run before
// cleanup.
type Stage int

const (
	StageBlock Stage = iota
	StageInline
	StageCleanup
)

func (s Stage) String() string {
	switch s {
	case StageBlock:
		return "block"
	case StageInline:
		return "inline"
	case StageCleanup:
		return "cleanup"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Rule is one substitution step. Func, when set, receives the submatches of
// each match and takes precedence over Replace, which is a regexp template.
type Rule struct {
	Name    string
	Stage   Stage
	Pattern *regexp.Regexp
	Replace string
	Func    func(c *Converter, groups []string) string
}

// Converter turns the bounded HTML subset produced by the scanner into
// Markdown by applying an ordered rule table. It is safe for concurrent use.
type Converter struct {
	rules []Rule
}

// NewConverter returns a Converter using DefaultRules.
func NewConverter() *Converter {
	return NewConverterWithRules(DefaultRules())
}

// NewConverterWithRules returns a Converter applying rules in order.
func NewConverterWithRules(rules []Rule) *Converter {
	return &Converter{rules: rules}
}

// Rules returns the rule table in application order.
func (c *Converter) Rules() []Rule {
	return c.rules
}

// knownTag matches the elements the scanner emits. Text without any of them
// is plain text, even when it contains angle brackets.
var knownTag = regexp.MustCompile(`(?i)</?(?:` +
	`h[1-6]|blockquote|pre|ol|ul|li|hr|br|p|div|img|a|code|strong|b|em|i|u|s|strike|del|` +
	`span|section|article|figure|figcaption|time` +
	`)(?:\s[^>]*)?/?>`)

// Convert transforms HTML into Markdown. It never returns an error; the
// signature satisfies postdoc.Converter.
func (c *Converter) Convert(html string) (string, error) {
	return c.Markdown(html), nil
}

// Markdown transforms HTML into Markdown. Input without tags is returned
// trimmed and otherwise verbatim.
func (c *Converter) Markdown(html string) string {
	if !knownTag.MatchString(html) {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(c.apply(html, StageCleanup))
}

// apply runs every rule whose stage is at most last.
func (c *Converter) apply(s string, last Stage) string {
	for _, r := range c.rules {
		if r.Stage > last {
			continue
		}
		if r.Func == nil {
			s = r.Pattern.ReplaceAllString(s, r.Replace)
			continue
		}
		s = r.Pattern.ReplaceAllStringFunc(s, func(m string) string {
			return r.Func(c, r.Pattern.FindStringSubmatch(m))
		})
	}
	return s
}

// fragment converts nested content without the cleanup stage, which the
// enclosing conversion runs once over the whole document.
func (c *Converter) fragment(s string) string {
	s = c.apply(s, StageInline)
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, "\n \t")
}

// tag matches an element by exact name with optional attributes, so that
// <b> never matches <br> and <p> never matches <pre>.
func tag(name string) string {
	return `<` + name + `(?:\s[^>]*)?>`
}

func pair(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)` + tag(name) + `(.*?)</` + name + `\s*>`)
}

var (
	blankRuns     = regexp.MustCompile(`\n{3,}`)
	lineBreak     = regexp.MustCompile(`(?i)\s*<br(?:\s[^>]*)?/?>\s*`)
	languageClass = regexp.MustCompile(`(?i)class="[^"]*\blanguage-([\w+#.-]+)`)
	codeTags      = regexp.MustCompile(`(?i)</?code(?:\s[^>]*)?>`)
	altAttr       = regexp.MustCompile(`(?i)\salt="([^"]*)"`)
	listItem      = pair("li")
)

// DefaultRules returns the built-in rule table.
func DefaultRules() []Rule {
	rules := make([]Rule, 0, 32)

	for level := 1; level <= 6; level++ {
		name := fmt.Sprintf("h%d", level)
		rules = append(rules, Rule{
			Name:    name,
			Stage:   StageBlock,
			Pattern: pair(name),
			Func:    heading(level),
		})
	}

	rules = append(rules,
		Rule{
			Name:    "blockquote",
			Stage:   StageBlock,
			Pattern: pair("blockquote"),
			Func:    quote,
		},
		Rule{
			Name:    "pre",
			Stage:   StageBlock,
			Pattern: regexp.MustCompile(`(?is)<pre((?:\s[^>]*)?)>(.*?)</pre\s*>`),
			Func:    fence,
		},
		Rule{
			Name:    "ol",
			Stage:   StageBlock,
			Pattern: pair("ol"),
			Func:    orderedList,
		},
		Rule{
			Name:    "li",
			Stage:   StageBlock,
			Pattern: listItem,
			Replace: "- ${1}\n",
		},
		Rule{
			Name:    "ul",
			Stage:   StageBlock,
			Pattern: pair("ul"),
			Replace: "\n\n${1}\n\n",
		},
		Rule{
			Name:    "hr",
			Stage:   StageBlock,
			Pattern: regexp.MustCompile(`(?i)<hr(?:\s[^>]*)?/?>`),
			Replace: "\n\n---\n\n",
		},
		Rule{
			Name:    "br",
			Stage:   StageBlock,
			Pattern: regexp.MustCompile(`(?i)<br(?:\s[^>]*)?/?>`),
			Replace: "\n",
		},
		Rule{
			Name:    "p-open",
			Stage:   StageBlock,
			Pattern: regexp.MustCompile(`(?i)` + tag("p")),
		},
		Rule{
			Name:    "p-close",
			Stage:   StageBlock,
			Pattern: regexp.MustCompile(`(?i)</p\s*>`),
			Replace: "\n\n",
		},
		Rule{
			Name:    "div-open",
			Stage:   StageBlock,
			Pattern: regexp.MustCompile(`(?i)` + tag("div")),
		},
		Rule{
			Name:    "div-close",
			Stage:   StageBlock,
			Pattern: regexp.MustCompile(`(?i)</div\s*>`),
			Replace: "\n",
		},

		Rule{
			Name:    "emoji",
			Stage:   StageInline,
			Pattern: regexp.MustCompile(`(?i)<img\s(?:[^>]*\s)?src="[^"]*emoji[^"]*"[^>]*>`),
			Func:    emoji,
		},
		Rule{
			Name:    "img-src-alt",
			Stage:   StageInline,
			Pattern: regexp.MustCompile(`(?i)<img\s(?:[^>]*\s)?src="([^"]*)"[^>]*\salt="([^"]*)"[^>]*>`),
			Replace: "![${2}](${1})",
		},
		Rule{
			Name:    "img-alt-src",
			Stage:   StageInline,
			Pattern: regexp.MustCompile(`(?i)<img\s(?:[^>]*\s)?alt="([^"]*)"[^>]*\ssrc="([^"]*)"[^>]*>`),
			Replace: "![${1}](${2})",
		},
		Rule{
			Name:    "img-src",
			Stage:   StageInline,
			Pattern: regexp.MustCompile(`(?i)<img\s(?:[^>]*\s)?src="([^"]*)"[^>]*>`),
			Replace: "![](${1})",
		},
		Rule{
			Name:    "link",
			Stage:   StageInline,
			Pattern: regexp.MustCompile(`(?is)<a\s(?:[^>]*\s)?href="([^"]*)"[^>]*>(.*?)</a\s*>`),
			Replace: "[${2}](${1})",
		},
		Rule{
			Name:    "link-single-quoted",
			Stage:   StageInline,
			Pattern: regexp.MustCompile(`(?is)<a\s(?:[^>]*\s)?href='([^']*)'[^>]*>(.*?)</a\s*>`),
			Replace: "[${2}](${1})",
		},
		Rule{Name: "code", Stage: StageInline, Pattern: pair("code"), Replace: "`${1}`"},
		Rule{Name: "strong", Stage: StageInline, Pattern: pair("strong"), Replace: "**${1}**"},
		Rule{Name: "b", Stage: StageInline, Pattern: pair("b"), Replace: "**${1}**"},
		Rule{Name: "em", Stage: StageInline, Pattern: pair("em"), Replace: "*${1}*"},
		Rule{Name: "i", Stage: StageInline, Pattern: pair("i"), Replace: "*${1}*"},
		Rule{Name: "u", Stage: StageInline, Pattern: pair("u"), Replace: "_${1}_"},
		Rule{Name: "s", Stage: StageInline, Pattern: pair("s"), Replace: "~~${1}~~"},
		Rule{Name: "strike", Stage: StageInline, Pattern: pair("strike"), Replace: "~~${1}~~"},
		Rule{Name: "del", Stage: StageInline, Pattern: pair("del"), Replace: "~~${1}~~"},

		Rule{
			Name:    "strip-tags",
			Stage:   StageCleanup,
			Pattern: regexp.MustCompile(`<[^>]+>`),
		},
		Rule{
			Name:    "entities",
			Stage:   StageCleanup,
			Pattern: entityPattern,
			Func: func(_ *Converter, groups []string) string {
				return decodeEntity(groups[0], groups[1])
			},
		},
		Rule{
			Name:    "blank-lines",
			Stage:   StageCleanup,
			Pattern: regexp.MustCompile(`(?m)^[ \t]+$`),
		},
		Rule{
			Name:    "collapse-newlines",
			Stage:   StageCleanup,
			Pattern: blankRuns,
			Replace: "\n\n",
		},
	)

	return rules
}

// heading keeps the heading on one line; a <br> inside it becomes a space.
func heading(level int) func(*Converter, []string) string {
	prefix := "\n\n" + strings.Repeat("#", level) + " "
	return func(_ *Converter, groups []string) string {
		return prefix + lineBreak.ReplaceAllString(groups[1], " ") + "\n\n"
	}
}

func quote(c *Converter, groups []string) string {
	inner := c.fragment(groups[1])
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

func fence(_ *Converter, groups []string) string {
	attrs, body := groups[1], groups[2]

	lang := ""
	if m := languageClass.FindStringSubmatch(attrs); m != nil {
		lang = m[1]
	} else if m := languageClass.FindStringSubmatch(body); m != nil {
		lang = m[1]
	}

	body = codeTags.ReplaceAllString(body, "")
	body = strings.Trim(body, "\n")
	return "\n\n```" + lang + "\n" + body + "\n```\n\n"
}

func orderedList(_ *Converter, groups []string) string {
	n := 0
	items := listItem.ReplaceAllStringFunc(groups[1], func(m string) string {
		n++
		return fmt.Sprintf("%d. %s\n", n, listItem.FindStringSubmatch(m)[1])
	})
	return "\n\n" + items + "\n\n"
}

func emoji(_ *Converter, groups []string) string {
	if m := altAttr.FindStringSubmatch(groups[0]); m != nil {
		return m[1]
	}
	return ""
}
