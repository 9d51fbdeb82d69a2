package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/postdoc"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		if postdoc.ErrorCode(err) == postdoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'postdoc history' to see archived articles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		}
		return err
	}

	opts, err := effectiveOptions(deps.Ctx, deps.Settings, c.OptionFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	renderer := deps.Renderers[postdoc.Format(c.Format)]
	if renderer == nil {
		err := postdoc.Errorf(postdoc.EINVALID, "no renderer for format %q", c.Format)
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	doc, err := renderer.Render(article, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	_, err = io.WriteString(deps.Stdout, doc)
	return err
}
