package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/batch"
	"github.com/fwojciec/xmd/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if !xmd.IsStatusURL(c.URL) {
		err := xmd.Errorf(xmd.ENOTPOSTPAGE, "Not on an X.com status page. Navigate to a tweet or article first.")
		fmt.Fprintf(deps.Stderr, "error: %s\n", xmd.ErrorMessage(err))
		return err
	}

	html, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	doc, err := deps.Extractor.Extract(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xmd.ErrorMessage(err))
		return err
	}

	if c.Archive {
		saved, err := deps.Documents.SaveDocument(deps.Ctx, doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", xmd.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Archived as %s\n", saved.ID)
	}

	switch {
	case c.JSON:
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case c.Stdout:
		content, err := fs.FormatDocument(doc, c.Frontmatter)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(deps.Stdout, content)
		return err
	}

	path, err := deps.NewWriter(c.Out, c.Frontmatter).WriteDocument(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xmd.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s: %s\n", batch.SavedMessage(doc.Kind), path)
	return nil
}

// load returns the page HTML from --html or by fetching the URL.
func (c *ExtractCmd) load(deps *Dependencies) (string, error) {
	if c.HTML != "" {
		b, err := os.ReadFile(c.HTML)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	fetcher, err := deps.OpenFetcher(c.Static)
	if err != nil {
		return "", err
	}
	return batch.FetchWithRetry(deps.Ctx, c.URL, fetcher.Fetch, func(format string, args ...any) {
		fmt.Fprintf(deps.Stderr, format+"\n", args...)
	})
}
