package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/mdclip/goquery"
	mdhttp "github.com/fwojciec/mdclip/http"
	mdslog "github.com/fwojciec/mdclip/slog"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := deps.logger()

	server := mdhttp.NewServer(newBuilder(c.Extractor, c.Converter, nil, logger), nil, goquery.ParsePage)
	server.Addr = c.Addr
	server.Logger = logger
	if deps.Fetcher != nil {
		server.Loader = mdslog.NewLoggingPageLoader(goquery.NewLoader(deps.Fetcher), logger)
	}

	if err := server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot listen on %s: %v\n", c.Addr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	<-deps.Ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Close(ctx)
}
