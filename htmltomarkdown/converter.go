package htmltomarkdown

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/xmd"
	"golang.org/x/net/html"
)

// Ensure Converter implements xmd.Converter at compile time.
var _ xmd.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert post HTML to Markdown.
// Nodes matched by the rule table are rendered by the rule; everything else
// falls through to the commonmark renderer.
type Converter struct {
	conv          *converter.Converter
	rules         Rules
	shortLinkHost string
	domain        string
}

// Option configures a Converter.
type Option func(*Converter)

// WithShortLinkHost sets the link-shortener host resolved by the short-link
// rule. Defaults to xmd.ShortLinkHost.
func WithShortLinkHost(host string) Option {
	return func(c *Converter) {
		c.shortLinkHost = host
	}
}

// WithDomain sets the origin used to absolutize links the generic renderer
// emits. Defaults to xmd.SiteURL.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// WithRules replaces the rule table.
func WithRules(rules Rules) Option {
	return func(c *Converter) {
		c.rules = rules
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		shortLinkHost: xmd.ShortLinkHost,
		domain:        xmd.SiteURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rules == nil {
		c.rules = DefaultRules(c.shortLinkHost)
	}

	c.conv = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	c.conv.Register.RendererFor("a", converter.TagTypeInline, c.renderRule, converter.PriorityEarly)
	c.conv.Register.RendererFor("img", converter.TagTypeInline, c.renderRule, converter.PriorityEarly)
	c.conv.Register.RendererFor("video", converter.TagTypeInline, c.renderRule, converter.PriorityEarly)

	return c
}

// Rules returns the rule table in precedence order.
func (c *Converter) Rules() Rules {
	return c.rules
}

// renderRule dispatches a node through the rule table, leaving unmatched
// nodes to the next registered renderer.
func (c *Converter) renderRule(_ converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	r, ok := c.rules.Match(n)
	if !ok {
		return converter.RenderTryNext
	}
	_, _ = w.WriteString(r.Render(n))
	return converter.RenderSuccess
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", xmd.Errorf(xmd.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html, converter.WithDomain(c.domain))
	if err != nil {
		return "", err
	}

	return result, nil
}

// Render converts the children of n to Markdown. It never fails: markup the
// converter cannot handle renders as an empty string.
func (c *Converter) Render(n *html.Node) string {
	if n == nil {
		return ""
	}
	if r, ok := c.rules.Match(n); ok {
		return r.Render(n)
	}

	var buf bytes.Buffer
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return ""
		}
	}

	md, err := c.Convert(buf.String())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(md)
}
