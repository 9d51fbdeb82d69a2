package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/postdoc"
)

// maxTitleRunes bounds the title column of the history listing.
const maxTitleRunes = 60

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := postdoc.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Handle != "" {
		filter.Handle = &c.Handle
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'postdoc export' to add one.")
		return nil
	}

	for _, a := range articles {
		byline := a.Author.Byline()
		if byline == "" {
			byline = "unknown author"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n     %s\n     %s\n",
			a.ID, humanize.Time(a.ExportedAt), byline, truncate(a.Title, maxTitleRunes), a.SourceURL)
	}

	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
