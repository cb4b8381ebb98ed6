package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xmd"
)

// Ensure Extractor implements xmd.Extractor at compile time.
var _ xmd.Extractor = (*Extractor)(nil)

// Extractor turns a rendered X page into a Document. Tweet pages go through
// the sanitizer and the Markdown converter; article pages go through the
// block classifier and inline formatter.
type Extractor struct {
	conv     xmd.Converter
	detector *Detector
	now      func() time.Time
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithNow sets the clock used when the page carries no timestamp.
func WithNow(now func() time.Time) ExtractorOption {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor that renders post bodies with conv.
func NewExtractor(conv xmd.Converter, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		conv:     conv,
		detector: NewDetector(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and extracts the document shown at pageURL.
func (e *Extractor) Extract(html string, pageURL string) (*xmd.Document, error) {
	if !xmd.IsStatusURL(pageURL) {
		return nil, xmd.Errorf(xmd.ENOTPOSTPAGE, "Not on an X.com status page. Navigate to a tweet or article first.")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, xmd.Errorf(xmd.EINVALID, "parse page: %v", err)
	}
	return e.ExtractSelection(doc.Selection, pageURL)
}

// ExtractSelection extracts from an already parsed page. The selection is
// never modified.
func (e *Extractor) ExtractSelection(root *goquery.Selection, pageURL string) (*xmd.Document, error) {
	if !xmd.IsStatusURL(pageURL) {
		return nil, xmd.Errorf(xmd.ENOTPOSTPAGE, "Not on an X.com status page. Navigate to a tweet or article first.")
	}

	src := e.source(root, pageURL)
	if e.detector.Classify(root) == xmd.PageArticle {
		return e.extractArticle(root, src)
	}
	return e.extractTweet(root, src), nil
}

func (e *Extractor) source(root *goquery.Selection, pageURL string) xmd.Source {
	publishedAt, ok := PublishedAt(root)
	if !ok {
		publishedAt = xmd.ISOTime(e.now())
	}
	return xmd.Source{
		URL:         pageURL,
		PublishedAt: publishedAt,
		PostID:      xmd.PostID(pageURL),
	}
}

func (e *Extractor) extractArticle(root *goquery.Selection, src xmd.Source) (*xmd.Document, error) {
	contents, err := ContentRoot(root)
	if err != nil {
		return nil, err
	}
	body := xmd.RenderBlocks(ClassifyBlocks(contents))
	return xmd.NewArticle(AuthorOf(root), ArticleTitle(root), body, src), nil
}

func (e *Extractor) extractTweet(root *goquery.Selection, src xmd.Source) *xmd.Document {
	articles := root.Find(selPost)
	if articles.Length() == 0 {
		return xmd.NewPlaceholder(AuthorOf(root), src)
	}

	threadAuthor := AuthorOf(articles.First())

	var posts []xmd.Post
	articles.Each(func(_ int, article *goquery.Selection) {
		posts = append(posts, xmd.Post{
			Author: AuthorOf(article),
			Text:   e.postText(article),
			Media:  Media(article),
		})
	})

	return xmd.Aggregate(posts, threadAuthor, src)
}

// postText renders the text body of one post. A post without text, or one
// the converter rejects, yields "".
func (e *Extractor) postText(article *goquery.Selection) string {
	text := article.Find(selPostText).First()
	if text.Length() == 0 {
		return ""
	}

	inner, err := Sanitize(text).Html()
	if err != nil || strings.TrimSpace(inner) == "" {
		return ""
	}

	md, err := e.conv.Convert(inner)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(xmd.Cleanup(md))
}
