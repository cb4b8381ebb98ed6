package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// chromeSelectors match UI elements that are never post content: counters,
// follow buttons, the overflow menu, truncation links, share and bookmark
// controls.
var chromeSelectors = []string{
	`[role="group"]`,
	`[data-testid$="-follow"]`,
	`[data-testid="caret"]`,
	`[data-testid="tweet-text-show-more-link"]`,
	`[aria-label="Share post"]`,
	`[aria-label="Bookmark"]`,
	`[data-testid="bookmark"]`,
}

// structuralSelectors match controls removed after the subscribe cards.
var structuralSelectors = []string{
	"button",
	"nav",
	`[role="navigation"]`,
}

// Sanitize returns a deep copy of sel's first node with UI chrome removed
// from its descendants. The node itself is always kept and the original tree
// is never modified.
func Sanitize(sel *goquery.Selection) *goquery.Selection {
	clone := sel.First().Clone()
	if clone.Length() == 0 {
		return clone
	}
	root := clone.Get(0)

	for _, s := range chromeSelectors {
		clone.Find(s).Remove()
	}

	// Subscribe calls-to-action sit in a card; drop the whole card.
	clone.Find(`a[href*="/subscribe"]`).Each(func(_ int, link *goquery.Selection) {
		card := link.Closest(`div[role="link"]`)
		if card.Length() == 0 {
			card = link.Parent()
		}
		if card.Length() == 0 || card.Get(0) == root {
			link.Remove()
			return
		}
		card.Remove()
	})

	for _, s := range structuralSelectors {
		clone.Find(s).Remove()
	}

	// Hidden images are still content (quoted media previews).
	clone.Find(`[aria-hidden="true"]`).Each(func(_ int, hidden *goquery.Selection) {
		if isImage(hidden.Get(0)) || hidden.Find("img").Length() > 0 {
			return
		}
		hidden.Remove()
	})

	return clone
}

func isImage(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Img
}
