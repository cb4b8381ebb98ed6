// Package goquery implements extraction of X pages on top of goquery
// selections: content-type detection, sanitization of post bodies, and the
// rich-text block classifier used for long-form articles.
package goquery

// Markup conventions of the rendered page. These are versioned by the site,
// not by us; a missing convention degrades the result rather than failing.
const (
	selPost          = `article[role="article"]`
	selPostText      = `[data-testid="tweetText"]`
	selUserName      = `[data-testid="User-Name"]`
	selPhoto         = `[data-testid="tweetPhoto"]`
	selTime          = `article[role="article"] time`
	selArticleTitle  = `[data-testid="twitter-article-title"]`
	selArticleView   = `[data-testid="twitterArticleRichTextView"]`
	selArticleDraft  = `[data-testid="longformRichTextComponent"]`
	selDraftContents = `[data-contents]`
	selCodeBlock     = `[data-testid="markdown-code-block"]`
	selLanguageLabel = `[class*="r-1aiqnjv"]`
	selSeparator     = `[role="separator"]`

	classHeaderOne     = "longform-header-one"
	classHeaderTwo     = "longform-header-two"
	classUnorderedItem = "longform-unordered-list-item"
	classOrderedItem   = "longform-ordered-list-item"

	testIDCodeBlock = "markdown-code-block"
)
