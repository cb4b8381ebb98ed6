package xmd_test

import (
	"testing"
	"time"

	"github.com/fwojciec/xmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Footer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "---\n\n> Source: https://x.com/x/status/42\n> Date: 2026-01-02T03:04:05.000Z", testSource.Footer())
}

func TestArticleHeader(t *testing.T) {
	t.Parallel()

	author := xmd.Author{Name: "Rob", Handle: "@rob"}

	assert.Equal(t, "# Go Proverbs\n\n*By Rob (@rob)*", xmd.ArticleHeader("Go Proverbs", author))
	assert.Equal(t, "# Article by Rob (@rob)", xmd.ArticleHeader("", author))
}

func TestNewArticle(t *testing.T) {
	t.Parallel()

	author := xmd.Author{Name: "Rob", Handle: "@rob"}

	doc := xmd.NewArticle(author, "Go Proverbs", "Clear is better than clever.", testSource)

	assert.Equal(t, xmd.KindArticle, doc.Kind)
	assert.Equal(t, "Go Proverbs", doc.Title)
	assert.Equal(t, author, doc.Author)
	assert.Equal(t, "# Go Proverbs\n\n*By Rob (@rob)*\n\nClear is better than clever.\n\n---\n\n> Source: https://x.com/x/status/42\n> Date: 2026-01-02T03:04:05.000Z", doc.Body)
	require.NoError(t, doc.Validate())
}

func TestNewArticle_EmptyBody(t *testing.T) {
	t.Parallel()

	doc := xmd.NewArticle(xmd.UnknownAuthor(), "T", "", testSource)

	assert.Equal(t, "# T\n\n*By Unknown (unknown)*\n\n---\n\n> Source: https://x.com/x/status/42\n> Date: 2026-01-02T03:04:05.000Z", doc.Body)
	assert.NotContains(t, doc.Body, "\n\n\n")
}

func TestNewPlaceholder(t *testing.T) {
	t.Parallel()

	doc := xmd.NewPlaceholder(xmd.UnknownAuthor(), testSource)

	assert.Equal(t, xmd.KindTweet, doc.Kind)
	assert.Equal(t, "# Unknown (unknown)\n\n*Could not extract tweet content.*\n\n---\n\n> Source: https://x.com/x/status/42\n> Date: 2026-01-02T03:04:05.000Z", doc.Body)
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *xmd.Document {
		return &xmd.Document{Kind: xmd.KindTweet, Body: "# x", SourceURL: "https://x.com/x/status/1"}
	}

	t.Run("accepts a complete document", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, valid().Validate())
	})

	t.Run("requires a source URL", func(t *testing.T) {
		t.Parallel()

		doc := valid()
		doc.SourceURL = ""

		assert.Equal(t, xmd.EINVALID, xmd.ErrorCode(doc.Validate()))
	})

	t.Run("requires a body", func(t *testing.T) {
		t.Parallel()

		doc := valid()
		doc.Body = ""

		assert.Equal(t, xmd.EINVALID, xmd.ErrorCode(doc.Validate()))
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		t.Parallel()

		doc := valid()
		doc.Kind = "reel"

		assert.Equal(t, xmd.EINVALID, xmd.ErrorCode(doc.Validate()))
	})
}

func TestISOTime(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CET", 3600)

	assert.Equal(t, "2026-01-02T02:04:05.120Z", xmd.ISOTime(time.Date(2026, 1, 2, 3, 4, 5, 120_000_000, loc)))
}

func TestPageKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tweet", xmd.PageTweet.String())
	assert.Equal(t, "article", xmd.PageArticle.String())
}
