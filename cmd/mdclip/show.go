package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/mdclip"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	cl, err := deps.Clips.FindClipByID(deps.Ctx, c.ID)
	if mdclip.ErrorCode(err) == mdclip.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: clip %q not found. Use 'mdclip history' to see saved clips.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mdclip.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cl)
	}

	fmt.Fprintln(deps.Stdout, cl.Markdown)
	return nil
}
