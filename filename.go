package xmd

import (
	"regexp"
	"strings"
)

// MaxSlugLength bounds the title part of a suggested filename.
const MaxSlugLength = 60

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s, joins alphanumeric runs with hyphens, and truncates the
// result to MaxSlugLength characters.
func Slug(s string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
	}
	return slug
}

// Filename suggests a file name for doc: "<handle>-<slug-or-id>.md".
// Articles with a title use the title slug; everything else uses the post id.
func Filename(doc *Document) string {
	handle := strings.Replace(doc.Author.Handle, "@", "", 1)

	if doc.Kind == KindArticle && doc.Title != "" {
		if slug := Slug(doc.Title); slug != "" {
			return handle + "-" + slug + ".md"
		}
	}
	return handle + "-" + doc.PostID + ".md"
}
