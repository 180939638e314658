package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/clip"
	"github.com/fwojciec/mdclip/gemini"
	mdhttp "github.com/fwojciec/mdclip/http"
	"github.com/fwojciec/mdclip/rod"
	mdslog "github.com/fwojciec/mdclip/slog"
	"github.com/fwojciec/mdclip/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides MDCLIP_DB and the config file when set.
	DBPath string

	// Config file path. Set before calling Run().
	ConfigPath string

	// Standard input, read by "convert -".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ClipService mdclip.ClipService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := NewParser(cli, cfg,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mdclip --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	deps.Logger = newLogger(stderr, cli.Verbose)

	if needsDB(cmd, cli) {
		if err := m.openDB(cfg, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.DB = m.DB
		deps.Clips = m.ClipService
	}

	switch cmd {
	case "convert":
		if needsFetcher(cli.Convert.Sources) {
			fetcher, err := newFetcher(cli.Convert.Browser, cli.Convert.Stealth, cli.Convert.Timeout, stderr)
			if err != nil {
				return err
			}
			defer fetcher.Close()
			deps.Fetcher = mdslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		if cli.Convert.Tokens {
			counter, err := gemini.NewTokenCounter(cli.Convert.Tokenizer)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.Counter = counter
		}
	case "serve":
		fetcher, err := newFetcher(cli.Serve.Browser, cli.Serve.Stealth, cli.Serve.Timeout, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()
		deps.Fetcher = mdslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// NewParser creates the Kong parser for cli. Values from cfg fill in flags
// missing from the command line.
func NewParser(cli *CLI, cfg *Config, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("mdclip"),
		kong.Description("Convert the main article of web pages to Markdown."),
		kong.Vars{
			"tokenizer": gemini.DefaultModel,
			"addr":      mdhttp.DefaultAddr,
		},
		kong.Resolvers(cfg.Resolver()),
	}, options...)
	return kong.New(cli, options...)
}

func (m *Main) openDB(cfg *Config, stderr io.Writer) error {
	path := m.DBPath
	if path == "" {
		path = dbPath(cfg)
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MDCLIP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	if m.ClipService == nil {
		m.ClipService = sqlite.NewClipService(m.DB)
	}
	return nil
}

func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "history", "show", "delete", "import":
		return true
	case "convert":
		return cli.Convert.usesDB()
	}
	return false
}

func needsFetcher(sources []string) bool {
	for _, source := range sources {
		if clip.HostOf(source) != "" {
			return true
		}
	}
	return false
}

// newFetcher returns the browser fetcher when browser or stealth is set and
// the plain HTTP fetcher otherwise.
func newFetcher(browser, stealth bool, timeout time.Duration, stderr io.Writer) (mdclip.Fetcher, error) {
	if !browser && !stealth {
		return mdhttp.NewFetcher(mdhttp.WithTimeout(timeout)), nil
	}
	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout), rod.WithStealth(stealth))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func dbPath(cfg *Config) string {
	if path := os.Getenv("MDCLIP_DB"); path != "" {
		return path
	}
	if cfg.DB != "" {
		return cfg.DB
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mdclip.db"
	}
	dir := filepath.Join(home, ".mdclip")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "history.db")
}
