package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Clips   mdclip.ClipService
	Fetcher mdclip.Fetcher
	Counter mdclip.TokenCounter

	// RetryDelays overrides the load backoff when non-nil.
	RetryDelays []time.Duration
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch, extraction and conversion"`

	Convert ConvertCmd `cmd:"" help:"Convert pages to Markdown"`
	History HistoryCmd `cmd:"" help:"List saved clips"`
	Show    ShowCmd    `cmd:"" help:"Print a saved clip"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved clip"`
	Import  ImportCmd  `cmd:"" help:"Save clip files from a directory to history"`
	Serve   ServeCmd   `cmd:"" help:"Serve conversions over HTTP"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Sources     []string      `arg:"" name:"source" help:"URL, HTML file, or - for standard input"`
	Title       string        `help:"Override the page title"`
	URL         string        `name:"url" help:"Source URL for files and standard input"`
	Extractor   string        `short:"e" default:"heuristic" enum:"heuristic,readability,trafilatura" help:"Article extractor (${enum})"`
	Converter   string        `default:"rules" enum:"rules,commonmark" help:"Markdown converter (${enum})"`
	Browser     bool          `short:"b" help:"Render pages in headless Chrome"`
	Stealth     bool          `help:"Hide headless Chrome from bot detection (implies --browser)"`
	Timeout     time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Concurrency int           `short:"c" default:"3" help:"Pages converted at once"`
	Rate        float64       `default:"1" help:"Requests per second per host, 0 for no limit"`
	Out         string        `short:"o" type:"path" help:"Write clips as Markdown files under this directory"`
	Save        bool          `short:"s" help:"Save clips to the history database"`
	SkipSaved   bool          `help:"Skip sources already in the history database"`
	JSON        bool          `name:"json" help:"Print clips as JSON"`
	Tokens      bool          `short:"t" help:"Count tokens of each clip"`
	Tokenizer   string        `default:"${tokenizer}" help:"Model whose tokenizer counts tokens"`
}

// usesDB reports whether the command reads or writes clip history.
func (c *ConvertCmd) usesDB() bool {
	return c.Save || c.SkipSaved
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `name:"url" help:"Only clips of this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of clips"`
	Offset int    `help:"Clips to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Clip ID"`
	JSON bool   `name:"json" help:"Print the clip as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Clip ID"`
	Force bool   `help:"Confirm deletion"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Dir string `arg:"" type:"path" help:"Directory written by 'mdclip convert --out'"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string        `default:"${addr}" help:"Listen address"`
	Extractor string        `short:"e" default:"heuristic" enum:"heuristic,readability,trafilatura" help:"Article extractor (${enum})"`
	Converter string        `default:"rules" enum:"rules,commonmark" help:"Markdown converter (${enum})"`
	Browser   bool          `short:"b" help:"Render fetched pages in headless Chrome"`
	Stealth   bool          `help:"Hide headless Chrome from bot detection (implies --browser)"`
	Timeout   time.Duration `default:"10s" help:"Per-page fetch timeout"`
}
