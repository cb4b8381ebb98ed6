package xmd

import (
	"strings"
)

// Post is one post element discovered on a tweet page.
type Post struct {
	Author Author
	Text   string
	Media  []string
}

// SameHandle reports whether two handles name the same account.
// Handles are compared case-insensitively.
func SameHandle(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Aggregate builds a tweet or thread document from the posts on a page.
// Only posts written by threadAuthor are kept, in document order, separated
// by a horizontal rule. One kept post yields KindTweet, more yield KindThread.
func Aggregate(posts []Post, threadAuthor Author, src Source) *Document {
	var kept []Post
	for _, p := range posts {
		if SameHandle(p.Author.Handle, threadAuthor.Handle) {
			kept = append(kept, p)
		}
	}

	parts := []string{"# " + threadAuthor.String(), ""}
	for i, p := range kept {
		if i > 0 {
			parts = append(parts, "", "---", "")
		}
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
		if len(p.Media) > 0 {
			parts = append(parts, "")
			parts = append(parts, p.Media...)
		}
	}
	body := CollapseBlankLines(strings.Join(parts, "\n"))
	body = strings.TrimRight(body, "\n") + "\n\n" + src.Footer()

	kind := KindTweet
	if len(kept) > 1 {
		kind = KindThread
	}

	return &Document{
		Kind:        kind,
		Author:      threadAuthor,
		Body:        body,
		SourceURL:   src.URL,
		PublishedAt: src.PublishedAt,
		PostID:      src.PostID,
	}
}
