package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/fwojciec/xmd"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rule renders a node shape the generic converter gets wrong.
type Rule struct {
	Name   string
	Filter func(n *html.Node) bool
	Render func(n *html.Node) string
}

// Rules is an ordered rule table. Node shapes overlap, so the first rule
// whose filter matches wins.
type Rules []Rule

// Match returns the first rule matching n.
func (rs Rules) Match(n *html.Node) (Rule, bool) {
	if n == nil || n.Type != html.ElementNode {
		return Rule{}, false
	}
	for _, r := range rs {
		if r.Filter(n) {
			return r, true
		}
	}
	return Rule{}, false
}

// Names returns the rule names in precedence order.
func (rs Rules) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	return names
}

// DefaultRules returns the rule table for post bodies, in precedence order:
// short links, mentions, images, videos.
func DefaultRules(shortLinkHost string) Rules {
	return Rules{
		ShortLinkRule(shortLinkHost),
		MentionRule(),
		ImageRule(),
		VideoRule(),
	}
}

// ShortLinkRule renders shortener anchors with their real destination.
// The title attribute carries the expanded URL when the visible text is
// truncated.
func ShortLinkRule(host string) Rule {
	return Rule{
		Name: "short-link",
		Filter: func(n *html.Node) bool {
			href, ok := attr(n, "href")
			return n.DataAtom == atom.A && ok && host != "" && hrefHost(href) == host
		},
		Render: func(n *html.Node) string {
			href, _ := attr(n, "href")
			title, _ := attr(n, "title")
			visible := strings.TrimSpace(textContent(n))

			display, target := visible, href
			if xmd.LooksLikeURL(title) {
				display, target = title, title
			}

			if xmd.LooksLikeURL(display) || strings.Contains(display, ".") {
				return "[" + display + "](" + target + ")"
			}
			return "[" + visible + "](" + target + ")"
		},
	}
}

// MentionRule renders profile anchors as a bare @handle with no surrounding
// line breaks.
func MentionRule() Rule {
	return Rule{
		Name: "mention",
		Filter: func(n *html.Node) bool {
			if n.DataAtom != atom.A {
				return false
			}
			href, _ := attr(n, "href")
			_, ok := xmd.ProfileHandle(href)
			return ok
		},
		Render: func(n *html.Node) string {
			text := strings.TrimSpace(textContent(n))
			if text == "" {
				href, _ := attr(n, "href")
				text, _ = xmd.ProfileHandle(href)
			}
			if strings.HasPrefix(text, "@") {
				return text
			}
			return "@" + text
		},
	}
}

// ImageRule renders emoji sprites as their alt text and everything else as
// an image at the largest CDN size.
func ImageRule() Rule {
	return Rule{
		Name: "image",
		Filter: func(n *html.Node) bool {
			return n.DataAtom == atom.Img
		},
		Render: func(n *html.Node) string {
			alt, _ := attr(n, "alt")
			src, _ := attr(n, "src")
			if alt == "" {
				alt = "Image"
			}
			if xmd.IsEmojiImage(src) {
				return alt
			}
			if src == "" {
				return ""
			}
			return "![" + alt + "](" + xmd.LargeImageURL(src) + ")"
		},
	}
}

// VideoRule renders a video as a link to its poster or first source.
func VideoRule() Rule {
	return Rule{
		Name: "video",
		Filter: func(n *html.Node) bool {
			return n.DataAtom == atom.Video
		},
		Render: func(n *html.Node) string {
			url, _ := attr(n, "poster")
			if url == "" {
				url = firstSourceURL(n)
			}
			if url == "" {
				return "[" + xmd.VideoLabel + "]"
			}
			return "[" + xmd.VideoLabel + "](" + url + ")"
		},
	}
}

func firstSourceURL(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Source {
			if src, _ := attr(c, "src"); src != "" {
				return src
			}
		}
		if src := firstSourceURL(c); src != "" {
			return src
		}
	}
	return ""
}

// attr returns the value of the named attribute and whether it is present.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// hrefHost returns the lowercased host name of href, or "" when it has none.
func hrefHost(href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// textContent concatenates the text of all descendants of n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
