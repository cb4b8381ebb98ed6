package goquery_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/goquery"
	"github.com/fwojciec/xmd/htmltomarkdown"
	"github.com/fwojciec/xmd/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	statusURL = "https://x.com/alice/status/1234567890"
	postDate  = "2026-01-02T03:04:05.000Z"
)

func post(name, handle, text string) string {
	return `<article role="article">` +
		`<div data-testid="User-Name">` +
		`<a href="/` + strings.TrimPrefix(handle, "@") + `"><span>` + name + `</span></a>` +
		`<a href="/` + strings.TrimPrefix(handle, "@") + `"><span>` + handle + `</span></a>` +
		`</div>` +
		`<time datetime="` + postDate + `">Jan 2</time>` +
		`<div data-testid="tweetText"><span>` + text + `</span></div>` +
		`<div role="group"><span>42</span></div>` +
		`</article>`
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects pages that are not a single post", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter())

		doc, err := e.Extract(post("Alice", "@alice", "hi"), "https://x.com/home")

		require.Error(t, err)
		assert.Nil(t, doc)
		assert.Equal(t, xmd.ENOTPOSTPAGE, xmd.ErrorCode(err))
	})

	t.Run("extracts a single tweet", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter())

		doc, err := e.Extract(`<html><body>`+post("Alice", "@alice", "Hello world")+`</body></html>`, statusURL)

		require.NoError(t, err)
		assert.Equal(t, xmd.KindTweet, doc.Kind)
		assert.Equal(t, xmd.Author{Name: "Alice", Handle: "@alice"}, doc.Author)
		assert.Equal(t, "1234567890", doc.PostID)
		assert.Equal(t, postDate, doc.PublishedAt)
		assert.Equal(t, statusURL, doc.SourceURL)
		assert.Equal(t, "# Alice (@alice)\n\nHello world\n\n---\n\n> Source: "+statusURL+"\n> Date: "+postDate, doc.Body)
	})

	t.Run("aggregates a thread by the first author", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter())
		html := `<html><body>` +
			post("Alice", "@alice", "First post") +
			post("Bob", "@bob", "A reply") +
			post("Alice", "@Alice", "Third post") +
			`</body></html>`

		doc, err := e.Extract(html, statusURL)

		require.NoError(t, err)
		assert.Equal(t, xmd.KindThread, doc.Kind)
		assert.NotContains(t, doc.Body, "A reply")
		assert.NotContains(t, doc.Body, "42")
		assert.Equal(t, "# Alice (@alice)\n\nFirst post\n\n---\n\nThird post\n\n---\n\n> Source: "+statusURL+"\n> Date: "+postDate, doc.Body)
	})

	t.Run("appends media after the post text", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter())
		html := `<article role="article">` +
			`<div data-testid="User-Name"><a href="/alice">Alice</a><a href="/alice">@alice</a></div>` +
			`<div data-testid="tweetText"><span>Look</span></div>` +
			`<div data-testid="tweetPhoto"><img alt="Image" src="https://pbs.twimg.com/media/p?format=png&name=small"></div>` +
			`</article>`

		doc, err := e.Extract(html, statusURL)

		require.NoError(t, err)
		assert.Contains(t, doc.Body, "Look\n\n![Image](https://pbs.twimg.com/media/p?format=png&name=large)\n\n---")
	})

	t.Run("degrades to a placeholder when no post element exists", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter(), goquery.WithNow(fixedNow))

		doc, err := e.Extract(`<html><body><div data-testid="User-Name"><a href="/alice">Alice</a><a href="/alice">@alice</a></div></body></html>`, statusURL)

		require.NoError(t, err)
		assert.Equal(t, xmd.KindTweet, doc.Kind)
		assert.Equal(t, "2026-03-04T05:06:07.000Z", doc.PublishedAt)
		assert.Equal(t, "# Alice (@alice)\n\n"+xmd.PlaceholderBody+"\n\n---\n\n> Source: "+statusURL+"\n> Date: 2026-03-04T05:06:07.000Z", doc.Body)
	})

	t.Run("absorbs converter failures", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", errors.New("boom")
			},
		}
		e := goquery.NewExtractor(conv)

		doc, err := e.Extract(post("Alice", "@alice", "lost"), statusURL)

		require.NoError(t, err)
		assert.Equal(t, "# Alice (@alice)\n\n---\n\n> Source: "+statusURL+"\n> Date: "+postDate, doc.Body)
	})

	t.Run("cleans up converter output", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "thanks\n\n@bob\n\n!\n", nil
			},
		}
		e := goquery.NewExtractor(conv)

		doc, err := e.Extract(post("Alice", "@alice", "ignored"), statusURL)

		require.NoError(t, err)
		assert.Contains(t, doc.Body, "\n\nthanks @bob!\n\n")
	})

	t.Run("extracts an article", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter(), goquery.WithNow(fixedNow))
		html := `<html><body>` +
			`<div data-testid="User-Name"><a href="/alice">Alice</a><a href="/alice">@alice</a></div>` +
			`<div data-testid="twitter-article-title">My Title</div>` +
			`<div data-testid="twitterArticleRichTextView"><div data-testid="longformRichTextComponent"><div data-contents="true">` +
			`<div class="longform-unstyled"><span>Intro </span><span style="font-weight: bold">bold</span></div>` +
			`<h2 class="longform-header-two"><span>Section</span></h2>` +
			`<ul><li class="longform-unordered-list-item"><span>one</span></li><li class="longform-unordered-list-item"><span>two</span></li></ul>` +
			`</div></div></div>` +
			`</body></html>`

		doc, err := e.Extract(html, statusURL)

		require.NoError(t, err)
		assert.Equal(t, xmd.KindArticle, doc.Kind)
		assert.Equal(t, "My Title", doc.Title)
		assert.Equal(t, "# My Title\n\n*By Alice (@alice)*\n\nIntro **bold**\n\n## Section\n\n- one\n- two\n\n---\n\n> Source: "+statusURL+"\n> Date: 2026-03-04T05:06:07.000Z", doc.Body)
	})

	t.Run("titles untitled articles by author", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter())
		html := `<div data-testid="twitterArticleRichTextView"><div class="longform-unstyled">Body</div></div>`

		doc, err := e.Extract(html, statusURL)

		require.NoError(t, err)
		assert.Empty(t, doc.Title)
		assert.True(t, strings.HasPrefix(doc.Body, "# Article by Unknown (unknown)\n\nBody\n\n---\n\n> Source: "))
	})

	t.Run("fails when an article has no body container", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter())

		doc, err := e.Extract(`<div data-testid="twitter-article-title">Title</div>`, statusURL)

		require.Error(t, err)
		assert.Nil(t, doc)
		assert.Equal(t, xmd.EARTICLEBODY, xmd.ErrorCode(err))
	})

	t.Run("ends every document with the source footer", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(htmltomarkdown.NewConverter())
		pages := []string{
			post("Alice", "@alice", "one"),
			post("Alice", "@alice", "one") + post("Alice", "@alice", "two"),
			`<div></div>`,
			`<div data-testid="twitterArticleRichTextView"><p>x</p></div>`,
		}

		for _, page := range pages {
			doc, err := e.Extract(page, statusURL)
			require.NoError(t, err)

			lines := strings.Split(doc.Body, "\n")
			require.GreaterOrEqual(t, len(lines), 4)
			tail := lines[len(lines)-4:]
			assert.Equal(t, "---", tail[0])
			assert.Equal(t, "", tail[1])
			assert.Equal(t, "> Source: "+statusURL, tail[2])
			assert.True(t, strings.HasPrefix(tail[3], "> Date: "))
		}
	})
}
