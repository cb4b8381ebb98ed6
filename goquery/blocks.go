package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xmd"
)

var languageClassRe = regexp.MustCompile(`language-(\w+)`)

// ContentRoot locates the element whose children are the article's blocks.
// It prefers the rich-text contents node, then the draft component, then the
// rich-text view itself. It returns EARTICLEBODY if the view is missing.
func ContentRoot(root *goquery.Selection) (*goquery.Selection, error) {
	view := root.Find(selArticleView).First()
	if view.Length() == 0 {
		return nil, xmd.Errorf(xmd.EARTICLEBODY, "Could not find the article body. The page may not have fully loaded.")
	}

	draft := view.Find(selArticleDraft).First()
	if draft.Length() == 0 {
		draft = view
	}
	contents := draft.Find(selDraftContents).First()
	if contents.Length() == 0 {
		contents = draft
	}
	return contents, nil
}

// ClassifyBlocks interprets each child of contentRoot as one block, in order.
func ClassifyBlocks(contentRoot *goquery.Selection) []xmd.Block {
	var blocks []xmd.Block
	contentRoot.First().Children().Each(func(_ int, child *goquery.Selection) {
		blocks = append(blocks, classifyBlock(child)...)
	})
	return blocks
}

// classifyBlock applies the checks in a fixed order. Code blocks come before
// separators since both are wrapped in a section element.
func classifyBlock(sel *goquery.Selection) []xmd.Block {
	if code, ok := codeBlock(sel); ok {
		return []xmd.Block{code}
	}

	if sel.Find(selSeparator).Length() > 0 {
		return []xmd.Block{xmd.Separator()}
	}

	if hasClass(sel, classHeaderOne) {
		return []xmd.Block{xmd.Heading(1, strings.TrimSpace(sel.Text()))}
	}
	if hasClass(sel, classHeaderTwo) {
		return []xmd.Block{xmd.Heading(2, strings.TrimSpace(sel.Text()))}
	}

	switch {
	case goquery.NodeName(sel) == "ul":
		return listItems(sel, classUnorderedItem, false)
	case sel.HasClass(classUnorderedItem):
		return []xmd.Block{xmd.ListItem(false, 0, ParseInline(sel)...)}
	case goquery.NodeName(sel) == "ol":
		return listItems(sel, classOrderedItem, true)
	case sel.HasClass(classOrderedItem):
		return []xmd.Block{xmd.ListItem(true, 1, ParseInline(sel)...)}
	}

	if strings.TrimSpace(sel.Text()) == "" {
		return []xmd.Block{xmd.Paragraph()}
	}
	return []xmd.Block{xmd.Paragraph(ParseInline(sel)...)}
}

// listItems renders the items of a list node. Items carrying class are
// preferred; a list without them falls back to its li elements.
func listItems(list *goquery.Selection, class string, ordered bool) []xmd.Block {
	lis := list.Find("." + class)
	if lis.Length() == 0 {
		lis = list.Find("li")
	}
	var items []xmd.Block
	lis.Each(func(i int, li *goquery.Selection) {
		n := 0
		if ordered {
			n = i + 1
		}
		items = append(items, xmd.ListItem(ordered, n, ParseInline(li)...))
	})
	return items
}

// codeBlock reports whether sel is or contains a code block and builds it.
func codeBlock(sel *goquery.Selection) (xmd.Block, bool) {
	cb := sel.Find(selCodeBlock).First()
	if cb.Length() == 0 {
		if id, _ := sel.Attr("data-testid"); id != testIDCodeBlock {
			return xmd.Block{}, false
		}
		cb = sel
	}

	var lang string
	if class, ok := cb.Find("code").First().Attr("class"); ok {
		if m := languageClassRe.FindStringSubmatch(class); m != nil {
			lang = m[1]
		}
	}
	if lang == "" {
		lang = strings.TrimSpace(cb.Find(selLanguageLabel).First().Text())
	}

	pre := cb.Find("pre").First()
	source := pre.Find("code").First()
	if source.Length() == 0 {
		source = pre
	}

	return xmd.CodeBlock(lang, strings.TrimRight(source.Text(), " \t\r\n")), true
}

// hasClass reports whether sel or any descendant carries class.
func hasClass(sel *goquery.Selection, class string) bool {
	return sel.HasClass(class) || sel.Find("."+class).Length() > 0
}
