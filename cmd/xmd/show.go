package main

import (
	"fmt"

	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	saved, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		if xmd.ErrorCode(err) == xmd.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'xmd list' to see archived documents.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", xmd.ErrorMessage(err))
		}
		return err
	}

	content, err := fs.FormatDocument(&saved.Document, c.Frontmatter)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(deps.Stdout, content)
	return err
}
