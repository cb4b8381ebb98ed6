package main

import (
	"fmt"

	"github.com/fwojciec/xmd"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
		if xmd.ErrorCode(err) == xmd.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'xmd list' to see archived documents.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", xmd.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %s\n", c.ID)
	return nil
}
