package xmd

import (
	"regexp"
	"strconv"
	"strings"
)

// InlineKind identifies the variant of an InlineRun.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineBold
	InlineItalic
	InlineLink
)

// InlineRun is a node in the inline formatting tree of an article paragraph.
// Text and Link runs are leaves; Bold and Italic runs wrap their children.
type InlineRun struct {
	Kind     InlineKind
	Text     string
	Href     string
	Children []InlineRun
}

// Text returns a plain text run.
func Text(s string) InlineRun { return InlineRun{Kind: InlineText, Text: s} }

// Bold returns a run rendering its children in strong emphasis.
func Bold(children ...InlineRun) InlineRun { return InlineRun{Kind: InlineBold, Children: children} }

// Italic returns a run rendering its children in emphasis.
func Italic(children ...InlineRun) InlineRun {
	return InlineRun{Kind: InlineItalic, Children: children}
}

// Link returns a hyperlink run.
func Link(text, href string) InlineRun { return InlineRun{Kind: InlineLink, Text: text, Href: href} }

// RenderInline renders runs depth-first as Markdown.
func RenderInline(runs []InlineRun) string {
	var b strings.Builder
	for _, r := range runs {
		writeInline(&b, r)
	}
	return b.String()
}

func writeInline(b *strings.Builder, r InlineRun) {
	switch r.Kind {
	case InlineText:
		b.WriteString(r.Text)
	case InlineLink:
		b.WriteString("[" + r.Text + "](" + r.Href + ")")
	case InlineBold:
		b.WriteString("**")
		for _, c := range r.Children {
			writeInline(b, c)
		}
		b.WriteString("**")
	case InlineItalic:
		b.WriteString("*")
		for _, c := range r.Children {
			writeInline(b, c)
		}
		b.WriteString("*")
	}
}

// BlockKind identifies the variant of a Block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockListItem
	BlockCode
	BlockSeparator
)

// Block is one top-level element of an article body, in document order.
type Block struct {
	Kind BlockKind

	// Heading
	Level int
	Text  string

	// Paragraph and ListItem. A paragraph without runs is a blank line.
	Runs    []InlineRun
	Ordered bool
	Index   int

	// Code
	Language string
	Code     string
}

// Heading returns a heading block of the given level (1 or 2).
func Heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Text: text}
}

// Paragraph returns a paragraph block.
func Paragraph(runs ...InlineRun) Block { return Block{Kind: BlockParagraph, Runs: runs} }

// ListItem returns a list item. Index is one-based and only used when ordered.
func ListItem(ordered bool, index int, runs ...InlineRun) Block {
	return Block{Kind: BlockListItem, Ordered: ordered, Index: index, Runs: runs}
}

// CodeBlock returns a fenced code block.
func CodeBlock(language, code string) Block {
	return Block{Kind: BlockCode, Language: language, Code: code}
}

// Separator returns a horizontal rule.
func Separator() Block { return Block{Kind: BlockSeparator} }

// RenderBlocks assembles blocks into a Markdown body.
// Empty headings and list items are dropped, empty paragraphs become blank
// lines, and runs of blank lines collapse to one.
func RenderBlocks(blocks []Block) string {
	var lines []string
	for _, bl := range blocks {
		switch bl.Kind {
		case BlockCode:
			lines = append(lines, "", "```"+bl.Language, strings.TrimRight(bl.Code, " \t\r\n"), "```", "")
		case BlockSeparator:
			lines = append(lines, "", "---", "")
		case BlockHeading:
			if bl.Text == "" {
				continue
			}
			lines = append(lines, "", strings.Repeat("#", bl.Level)+" "+bl.Text, "")
		case BlockListItem:
			text := RenderInline(bl.Runs)
			if text == "" {
				continue
			}
			marker := "-"
			if bl.Ordered {
				marker = strconv.Itoa(bl.Index) + "."
			}
			lines = append(lines, marker+" "+text)
		default:
			lines = append(lines, RenderInline(bl.Runs))
		}
	}
	return strings.TrimSpace(CollapseBlankLines(strings.Join(lines, "\n")))
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// CollapseBlankLines reduces every run of three or more newlines to two.
func CollapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}
