package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/clip"
	"github.com/fwojciec/mdclip/fs"
	"github.com/fwojciec/mdclip/goquery"
	"github.com/fwojciec/mdclip/htmltomarkdown"
	"github.com/fwojciec/mdclip/markdown"
	"github.com/fwojciec/mdclip/readability"
	mdslog "github.com/fwojciec/mdclip/slog"
	"github.com/fwojciec/mdclip/trafilatura"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	logger := deps.logger()

	loader := &SourceLoader{Stdin: deps.Stdin, Title: c.Title, URL: c.URL}
	if deps.Fetcher != nil {
		loader.Web = mdslog.NewLoggingPageLoader(goquery.NewLoader(deps.Fetcher), logger)
	}

	batch := &clip.Batch{
		Loader:      loader,
		Builder:     newBuilder(c.Extractor, c.Converter, c.baseURL(), logger),
		Limiter:     clip.NewDomainLimiter(c.Rate, 1),
		Counter:     deps.Counter,
		Concurrency: c.Concurrency,
		RetryDelays: deps.RetryDelays,
		Log: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}

	if c.SkipSaved {
		saved, err := clip.NewSavedFilter(deps.Ctx, deps.Clips)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mdclip.ErrorMessage(err))
			return err
		}
		batch.Skip = saved.Skip
	}

	var failed, total int
	progress := func(p mdclip.Progress) {
		total = p.Total
		source := TruncateSource(p.Source, 60)
		switch {
		case p.Error != nil:
			failed++
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", p.Completed, p.Total, source, describe(p.Error))
		case p.Skipped:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: already saved\n", p.Completed, p.Total, source)
		case p.Total > 1:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s\n", p.Completed, p.Total, source)
		}
	}

	clips, err := batch.Run(deps.Ctx, c.Sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(err))
		return err
	}

	if c.Save {
		for _, cl := range clips {
			if err := deps.Clips.CreateClip(deps.Ctx, cl); err != nil {
				fmt.Fprintf(deps.Stderr, "error saving %s: %s\n", cl.URL, describe(err))
				return err
			}
			fmt.Fprintf(deps.Stderr, "Saved %s  %s\n", cl.ID, cl.URL)
		}
	}

	if c.Out != "" {
		if err := WriteClips(deps.Ctx, fs.NewFileStore(c.Out), clips); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing clips: %s\n", describe(err))
			return err
		}
	}

	if err := c.print(deps, clips); err != nil {
		return err
	}

	if failed > 0 {
		return mdclip.Errorf(mdclip.ECONVERSION, "%d of %d sources failed", failed, total)
	}
	return nil
}

func (c *ConvertCmd) print(deps *Dependencies, clips []*mdclip.Clip) error {
	if c.Tokens {
		for _, cl := range clips {
			fmt.Fprintf(deps.Stderr, "%s: %s, %s\n", TruncateSource(cl.URL, 60), FormatTokens(cl.Tokens), FormatBytes(len(cl.Markdown)))
		}
	}

	switch {
	case c.JSON:
		if clips == nil {
			clips = []*mdclip.Clip{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(clips)
	case c.Out != "":
		fmt.Fprintf(deps.Stdout, "Wrote %d clips to %s\n", len(clips), c.Out)
	default:
		for i, cl := range clips {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintln(deps.Stdout, cl.Markdown)
		}
	}
	return nil
}

// baseURL is the address relative links resolve against: --url, or the
// only source when it is a web page.
func (c *ConvertCmd) baseURL() *url.URL {
	raw := c.URL
	if raw == "" && len(c.Sources) == 1 && clip.HostOf(c.Sources[0]) != "" {
		raw = c.Sources[0]
	}
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

// WriteClips stages every clip and commits them together. Nothing is written
// when any clip fails.
func WriteClips(ctx context.Context, store mdclip.ClipStore, clips []*mdclip.Clip) error {
	for _, cl := range clips {
		if err := store.Save(ctx, cl); err != nil {
			_ = store.Abort()
			return err
		}
	}
	if len(clips) == 0 {
		return store.Abort()
	}
	return store.Commit()
}

// newBuilder wires the named extractor and converter with logging.
func newBuilder(extractor, converter string, base *url.URL, logger *slog.Logger) *clip.Builder {
	var e mdclip.Extractor
	switch extractor {
	case "readability":
		e = readability.NewExtractor(base)
	case "trafilatura":
		e = trafilatura.NewExtractor(base)
	default:
		e = goquery.NewArticleExtractor()
	}

	var conv mdclip.Converter
	switch converter {
	case "commonmark":
		var opts []htmltomarkdown.Option
		if base != nil {
			opts = append(opts, htmltomarkdown.WithDomain(base.String()))
		}
		conv = htmltomarkdown.NewConverter(opts...)
	default:
		conv = markdown.NewConverter()
	}

	return clip.NewBuilder(
		mdslog.NewLoggingExtractor(e, logger),
		mdslog.NewLoggingConverter(conv, logger),
	)
}

// describe returns the message of application errors and the full text of
// anything else.
func describe(err error) string {
	if mdclip.ErrorCode(err) == mdclip.EINTERNAL {
		return err.Error()
	}
	return mdclip.ErrorMessage(err)
}
