package goquery_test

import (
	"testing"

	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("detects article from title marker", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div data-testid="twitter-article-title">Why Go</div>
</body></html>`

		assert.Equal(t, xmd.PageArticle, goquery.NewDetector().Detect(html))
	})

	t.Run("detects article from rich text view", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article role="article">
	<div data-testid="twitterArticleRichTextView"><p>body</p></div>
</article>
</body></html>`

		assert.Equal(t, xmd.PageArticle, goquery.NewDetector().Detect(html))
	})

	t.Run("detects article from draft component", func(t *testing.T) {
		t.Parallel()

		html := `<div data-testid="longformRichTextComponent"><div data-contents="true"></div></div>`

		assert.Equal(t, xmd.PageArticle, goquery.NewDetector().Detect(html))
	})

	t.Run("classifies post pages as tweets", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article role="article">
	<div data-testid="tweetText"><span>hello</span></div>
</article>
</body></html>`

		assert.Equal(t, xmd.PageTweet, goquery.NewDetector().Detect(html))
	})

	t.Run("classifies pages without any post container as tweets", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, xmd.PageTweet, goquery.NewDetector().Detect(`<html><body><p>loading</p></body></html>`))
	})

	t.Run("ignores the page URL shape", func(t *testing.T) {
		t.Parallel()

		// An article link inside a tweet is not an article container.
		html := `<article role="article">
	<div data-testid="tweetText"><a href="https://x.com/i/article/123">read</a></div>
</article>`

		assert.Equal(t, xmd.PageTweet, goquery.NewDetector().Detect(html))
	})
}

func TestDetector_Classify(t *testing.T) {
	t.Parallel()

	root := parse(t, `<div><div data-testid="twitterArticleRichTextView"></div></div>`)

	assert.Equal(t, xmd.PageArticle, goquery.NewDetector().Classify(root))
	assert.Equal(t, "article", goquery.NewDetector().Classify(root).String())
}
