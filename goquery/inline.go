package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xmd"
	"golang.org/x/net/html"
)

// maxInlineDepth bounds recursion on pathological nesting. Deeper content
// is kept as plain text.
const maxInlineDepth = 64

// ParseInline builds the inline run tree for the children of sel's first node.
func ParseInline(sel *goquery.Selection) []xmd.InlineRun {
	return parseInline(sel.First(), 0)
}

// RenderInline renders the children of sel's first node as inline Markdown.
func RenderInline(sel *goquery.Selection) string {
	return xmd.RenderInline(ParseInline(sel))
}

func parseInline(sel *goquery.Selection, depth int) []xmd.InlineRun {
	if depth > maxInlineDepth {
		return []xmd.InlineRun{xmd.Text(sel.Text())}
	}

	var runs []xmd.InlineRun
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		n := child.Get(0)
		switch n.Type {
		case html.TextNode:
			runs = append(runs, xmd.Text(n.Data))
			return
		case html.ElementNode:
		default:
			return
		}

		switch {
		case goquery.NodeName(child) == "a":
			runs = append(runs, anchorRun(child))
		case isInlineLinkWrapper(child):
			runs = append(runs, anchorRun(child.Find("a").First()))
		case isBold(child):
			runs = append(runs, xmd.Bold(parseInline(child, depth+1)...))
		case isItalic(child):
			runs = append(runs, xmd.Italic(parseInline(child, depth+1)...))
		default:
			runs = append(runs, parseInline(child, depth+1)...)
		}
	})
	return runs
}

func anchorRun(a *goquery.Selection) xmd.InlineRun {
	href, _ := a.Attr("href")
	return xmd.Link(strings.TrimSpace(a.Text()), xmd.ResolveHref(href))
}

// isInlineLinkWrapper reports whether sel is a structural container whose
// only content is a single link, as opposed to a rich-text block that happens
// to contain a link among other content. Icons without text may sit beside
// the link.
func isInlineLinkWrapper(sel *goquery.Selection) bool {
	anchors := sel.Find("a")
	if anchors.Length() != 1 {
		return false
	}
	if _, ok := sel.Attr("data-offset-key"); ok {
		return false
	}
	class, _ := sel.Attr("class")
	if strings.Contains(class, "DraftStyleDefault") || strings.Contains(class, "longform-") {
		return false
	}
	return strings.TrimSpace(sel.Text()) == strings.TrimSpace(anchors.Text())
}

func isBold(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "strong", "b":
		return true
	}
	switch w := styleValue(sel, "font-weight"); w {
	case "bold", "bolder":
		return true
	default:
		n, err := strconv.Atoi(w)
		return err == nil && n >= 700
	}
}

func isItalic(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "em", "i":
		return true
	}
	return styleValue(sel, "font-style") == "italic"
}

// styleValue returns the lowercased value of a declaration in the inline
// style attribute, or "" when absent.
func styleValue(sel *goquery.Selection, property string) string {
	style, ok := sel.Attr("style")
	if !ok {
		return ""
	}
	for _, decl := range strings.Split(style, ";") {
		key, val, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), property) {
			return strings.ToLower(strings.TrimSpace(val))
		}
	}
	return ""
}
