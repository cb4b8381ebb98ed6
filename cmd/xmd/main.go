package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/fs"
	"github.com/fwojciec/xmd/goquery"
	"github.com/fwojciec/xmd/htmltomarkdown"
	xhttp "github.com/fwojciec/xmd/http"
	"github.com/fwojciec/xmd/rod"
	xslog "github.com/fwojciec/xmd/slog"
	"github.com/fwojciec/xmd/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overridden by --db or XMD_DB.
	DBPath string

	// SQLite database used by the archive. Opened only by commands that need it.
	DB *sqlite.DB

	// Fetchers opened during Run, closed by Close.
	fetchers []xmd.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for _, f := range m.fetchers {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.fetchers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("xmd"),
		kong.Description("Save X posts, threads, and articles as Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'xmd --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var extractor xmd.Extractor = goquery.NewExtractor(htmltomarkdown.NewConverter())
	if logger != nil {
		extractor = xslog.NewLoggingExtractor(extractor, logger)
	}
	deps.Extractor = extractor

	deps.OpenFetcher = func(static bool) (xmd.Fetcher, error) {
		f, err := m.openFetcher(static, cli.Timeout)
		if err != nil {
			if !static {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			}
			return nil, err
		}
		if logger != nil {
			return xslog.NewLoggingFetcher(f, logger), nil
		}
		return f, nil
	}

	deps.NewWriter = func(dir string, frontmatter bool) xmd.DocumentWriter {
		var w xmd.DocumentWriter = fs.NewWriter(dir, fs.WithFrontmatter(frontmatter))
		if logger != nil {
			w = xslog.NewLoggingDocumentWriter(w, logger)
		}
		return w
	}

	if needsStore(kongCtx.Command(), cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set XMD_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		deps.Documents = sqlite.NewDocumentStore(m.DB)
	}

	return kongCtx.Run(deps)
}

// openFetcher creates the fetcher and registers it for Close.
func (m *Main) openFetcher(static bool, timeout time.Duration) (xmd.Fetcher, error) {
	var f xmd.Fetcher
	if static {
		f = xhttp.NewFetcher(xhttp.WithTimeout(timeout))
	} else {
		rf, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		f = rf
	}
	m.fetchers = append(m.fetchers, f)
	return f, nil
}

// needsStore reports whether the parsed command reads or writes the archive.
func needsStore(command string, cli *CLI) bool {
	switch strings.Fields(command)[0] {
	case "list", "show", "delete":
		return true
	case "extract":
		return cli.Extract.Archive
	case "batch":
		return cli.Batch.Archive
	}
	return false
}

func defaultDBPath() string {
	if path := os.Getenv("XMD_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "xmd.db"
	}
	dir := filepath.Join(home, ".xmd")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "xmd.db")
}
