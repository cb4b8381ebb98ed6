package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/xmd"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := xmd.DocumentFilter{Limit: c.Limit}
	if c.Handle != "" {
		filter.Handle = &c.Handle
	}
	if c.Kind != "" {
		kind := xmd.Kind(c.Kind)
		switch kind {
		case xmd.KindTweet, xmd.KindThread, xmd.KindArticle:
		default:
			fmt.Fprintf(deps.Stderr, "error: unknown kind %q (want tweet, thread, or article)\n", c.Kind)
			return xmd.Errorf(xmd.EINVALID, "unknown kind %q", c.Kind)
		}
		filter.Kind = &kind
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xmd.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'xmd extract --archive' to save one.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %s  %s  %s\n",
			d.ID, d.Document.Kind, d.Document.Author.Handle, d.SavedAt.Format("2006-01-02"), summary(&d.Document))
	}

	return nil
}

// summary returns a one-line description: the title, else the first line of
// post text after the heading.
func summary(doc *xmd.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	for _, line := range strings.Split(doc.Body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if r := []rune(line); len(r) > 60 {
			return string(r[:57]) + "..."
		}
		return line
	}
	return ""
}
