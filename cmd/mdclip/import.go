package main

import (
	"fmt"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/clip"
	"github.com/fwojciec/mdclip/fs"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	clips, err := fs.NewFileStore(c.Dir).Clips(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	saved, err := clip.NewSavedFilter(deps.Ctx, deps.Clips)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mdclip.ErrorMessage(err))
		return err
	}

	var imported, skipped int
	for _, cl := range clips {
		exists, err := saved.Skip(deps.Ctx, cl.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mdclip.ErrorMessage(err))
			return err
		}
		if exists {
			skipped++
			continue
		}
		if err := deps.Clips.CreateClip(deps.Ctx, cl); err != nil {
			fmt.Fprintf(deps.Stderr, "error saving %s: %s\n", cl.URL, describe(err))
			return err
		}
		saved.Add(cl.URL)
		imported++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d clips (%d already saved)\n", imported, skipped)
	return nil
}
