package xmd

import (
	"context"
	"strings"
	"time"
)

// Kind identifies the type of an extracted document.
type Kind string

// Kind constants.
const (
	KindTweet   Kind = "tweet"
	KindThread  Kind = "thread"
	KindArticle Kind = "article"
)

// Author identifies the account that published a post or article.
type Author struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

// Sentinel author values used when the markup carries no author block.
const (
	UnknownName   = "Unknown"
	UnknownHandle = "unknown"
)

// UnknownAuthor returns the sentinel author.
func UnknownAuthor() Author {
	return Author{Name: UnknownName, Handle: UnknownHandle}
}

// String returns the author as "Name (@handle)".
func (a Author) String() string {
	return a.Name + " (" + a.Handle + ")"
}

// Document is the result of a single extraction.
// Body is complete Markdown including the heading and source footer.
type Document struct {
	Kind        Kind   `json:"kind"`
	Author      Author `json:"author"`
	Title       string `json:"title,omitempty"`
	Body        string `json:"body"`
	SourceURL   string `json:"sourceUrl"`
	PublishedAt string `json:"publishedAt"`
	PostID      string `json:"postId"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Body == "" {
		return Errorf(EINVALID, "document body required")
	}
	switch d.Kind {
	case KindTweet, KindThread, KindArticle:
	default:
		return Errorf(EINVALID, "unknown document kind %q", d.Kind)
	}
	return nil
}

// Source carries the page-level metadata every document shares.
type Source struct {
	URL         string
	PublishedAt string
	PostID      string
}

// Footer returns the closing block of every document body.
func (s Source) Footer() string {
	return "---\n\n> Source: " + s.URL + "\n> Date: " + s.PublishedAt
}

// ArticleHeader returns the heading lines of an article document.
func ArticleHeader(title string, author Author) string {
	if title != "" {
		return "# " + title + "\n\n*By " + author.String() + "*"
	}
	return "# Article by " + author.String()
}

// NewArticle assembles an article document from its rendered body. An empty
// body leaves the header followed directly by the footer.
func NewArticle(author Author, title, body string, src Source) *Document {
	parts := []string{ArticleHeader(title, author), ""}
	if body != "" {
		parts = append(parts, body, "")
	}
	parts = append(parts, src.Footer())
	return &Document{
		Kind:        KindArticle,
		Author:      author,
		Title:       title,
		Body:        strings.Join(parts, "\n"),
		SourceURL:   src.URL,
		PublishedAt: src.PublishedAt,
		PostID:      src.PostID,
	}
}

// PlaceholderBody is used when a tweet page contains no post element.
const PlaceholderBody = "*Could not extract tweet content.*"

// NewPlaceholder assembles the degraded document returned when no post
// element is present on a tweet page.
func NewPlaceholder(author Author, src Source) *Document {
	parts := []string{"# " + author.String(), "", PlaceholderBody, "", src.Footer()}
	return &Document{
		Kind:        KindTweet,
		Author:      author,
		Body:        strings.Join(parts, "\n"),
		SourceURL:   src.URL,
		PublishedAt: src.PublishedAt,
		PostID:      src.PostID,
	}
}

// ISOTime formats t as a UTC timestamp with millisecond precision.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// PageKind is the result of content-type detection.
type PageKind int

const (
	PageTweet PageKind = iota
	PageArticle
)

func (k PageKind) String() string {
	if k == PageArticle {
		return "article"
	}
	return "tweet"
}

// DocumentWriter persists a document and reports where it went.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) (path string, err error)
}

// SavedDocument is an archived document.
type SavedDocument struct {
	ID          string    `json:"id"`
	Document    Document  `json:"document"`
	ContentHash string    `json:"contentHash"`
	SavedAt     time.Time `json:"savedAt"`
}

// DocumentStore archives extracted documents.
type DocumentStore interface {
	// SaveDocument archives a document. Saving a post whose body is unchanged
	// returns the existing record.
	SaveDocument(ctx context.Context, doc *Document) (*SavedDocument, error)

	// FindDocumentByID retrieves an archived document.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*SavedDocument, error)

	// FindDocuments retrieves archived documents matching the filter,
	// most recently saved first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*SavedDocument, error)

	// DeleteDocument permanently removes an archived document.
	// Returns ENOTFOUND if the document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	Handle *string `json:"handle"`
	Kind   *Kind   `json:"kind"`
	PostID *string `json:"postId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
