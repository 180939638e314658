package main

import (
	"fmt"

	"github.com/fwojciec/mdclip"
	"github.com/mattn/go-runewidth"
)

// titleWidth is the display width of the title column in history output.
const titleWidth = 40

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := mdclip.ClipFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	clips, err := deps.Clips.FindClips(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mdclip.ErrorMessage(err))
		return err
	}

	if len(clips) == 0 {
		fmt.Fprintln(deps.Stdout, "No clips found. Use 'mdclip convert --save' to save one.")
		return nil
	}

	for _, cl := range clips {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			cl.ID,
			cl.CreatedAt.Local().Format("2006-01-02 15:04"),
			FormatTitle(cl.Title, titleWidth),
			cl.URL,
		)
	}

	return nil
}

// FormatTitle fits title to exactly width terminal columns, truncating with
// an ellipsis or padding with spaces. Wide characters count as two columns.
func FormatTitle(title string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(title, width, "…"), width)
}
