package main

import (
	"fmt"

	"github.com/fwojciec/postdoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Articles.DeleteArticle(deps.Ctx, c.ID); err != nil {
		if postdoc.ErrorCode(err) == postdoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'postdoc history' to see archived articles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %s\n", c.ID)
	return nil
}
