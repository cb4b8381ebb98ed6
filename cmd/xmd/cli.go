package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/xmd"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor xmd.Extractor
	Documents xmd.DocumentStore

	// OpenFetcher creates a fetcher on first use so commands that read
	// local files or the archive never start a browser.
	OpenFetcher func(static bool) (xmd.Fetcher, error)

	// NewWriter creates a writer for an output directory.
	NewWriter func(dir string, frontmatter bool) xmd.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log each fetch, extraction, and write to stderr"`
	DB      string        `env:"XMD_DB" help:"Archive database path (default ~/.xmd/xmd.db)"`
	Timeout time.Duration `env:"XMD_TIMEOUT" default:"30s" help:"Fetch timeout per page"`

	Extract ExtractCmd `cmd:"" help:"Extract a single post, thread, or article"`
	Batch   BatchCmd   `cmd:"" help:"Extract every post URL listed in a file"`
	List    ListCmd    `cmd:"" help:"List archived documents"`
	Show    ShowCmd    `cmd:"" help:"Print an archived document"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an archived document"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL         string `arg:"" help:"X status URL"`
	HTML        string `type:"existingfile" help:"Read rendered HTML from a file instead of fetching"`
	Static      bool   `help:"Fetch without a browser (the page must already be rendered)"`
	Out         string `short:"o" env:"XMD_OUT" default:"." help:"Output directory"`
	Stdout      bool   `help:"Print Markdown to stdout instead of writing a file"`
	Frontmatter bool   `short:"f" help:"Prepend YAML frontmatter"`
	Archive     bool   `short:"a" help:"Also save the document to the archive"`
	JSON        bool   `name:"json" help:"Print the document record as JSON"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string  `arg:"" help:"File with one URL per line, or - for stdin"`
	Static      bool    `help:"Fetch without a browser (the pages must already be rendered)"`
	Out         string  `short:"o" env:"XMD_OUT" default:"." help:"Output directory"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64 `default:"0.5" help:"Requests per second per host (0 disables)"`
	Frontmatter bool    `short:"f" help:"Prepend YAML frontmatter"`
	Archive     bool    `short:"a" help:"Also save documents to the archive"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Handle string `help:"Only documents by this author handle"`
	Kind   string `help:"Only documents of this kind: tweet, thread, or article"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of documents"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID          string `arg:"" help:"Archived document ID"`
	Frontmatter bool   `short:"f" help:"Prepend YAML frontmatter"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Archived document ID"`
}
