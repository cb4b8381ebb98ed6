package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xmd"
)

// articleMarkers identify a long-form article. Any one is sufficient.
var articleMarkers = []string{
	selArticleTitle,
	selArticleView,
	selArticleDraft,
}

// Detector decides which extraction pipeline a page needs.
// Only markup is considered; the page URL never decides the kind.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect parses HTML and classifies it.
// Unparseable input is treated as a tweet page, which degrades gracefully.
func (d *Detector) Detect(html string) xmd.PageKind {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return xmd.PageTweet
	}
	return d.Classify(doc.Selection)
}

// Classify returns PageArticle when root contains an article container and
// PageTweet otherwise, including when no post container exists at all.
func (d *Detector) Classify(root *goquery.Selection) xmd.PageKind {
	for _, sel := range articleMarkers {
		if d.hasSelector(root, sel) {
			return xmd.PageArticle
		}
	}
	return xmd.PageTweet
}

// hasSelector checks if root contains at least one element matching the selector.
func (d *Detector) hasSelector(root *goquery.Selection, selector string) bool {
	return root.Find(selector).Length() > 0
}
