package main

import (
	"fmt"

	"github.com/fwojciec/mdclip"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return mdclip.Errorf(mdclip.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Clips.DeleteClip(deps.Ctx, c.ID); mdclip.ErrorCode(err) == mdclip.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: clip %q not found. Use 'mdclip history' to see saved clips.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mdclip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted clip %s\n", c.ID)
	return nil
}
