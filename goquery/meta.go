package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xmd"
)

// AuthorOf reads the author block inside scope. The "@" link text is the
// handle and the first other link text is the display name. When no link
// text carries a handle, the first profile href is used instead.
// Missing values fall back to the unknown sentinels.
func AuthorOf(scope *goquery.Selection) xmd.Author {
	author := xmd.UnknownAuthor()

	links := scope.Find(selUserName).First().Find("a")
	if links.Length() == 0 {
		return author
	}

	links.Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		switch {
		case strings.HasPrefix(text, "@"):
			author.Handle = text
		case text != "" && author.Name == xmd.UnknownName:
			author.Name = text
		}
	})

	if author.Handle == xmd.UnknownHandle {
		links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if handle, ok := xmd.ProfileHandle(href); ok {
				author.Handle = "@" + handle
				return false
			}
			return true
		})
	}

	return author
}

// PublishedAt returns the first post timestamp on the page: the machine
// readable datetime attribute, else the visible text. It reports false when
// the page has no timestamp at all.
func PublishedAt(root *goquery.Selection) (string, bool) {
	t := root.Find(selTime).First()
	if t.Length() == 0 {
		return "", false
	}
	if dt, ok := t.Attr("datetime"); ok && dt != "" {
		return dt, true
	}
	return strings.TrimSpace(t.Text()), true
}

// ArticleTitle returns the trimmed article title, or "" when absent.
func ArticleTitle(root *goquery.Selection) string {
	return strings.TrimSpace(root.Find(selArticleTitle).First().Text())
}

// Media returns Markdown links for the photos and videos inside a post.
// Avatars and emoji are skipped and CDN photos are upscaled.
func Media(post *goquery.Selection) []string {
	var media []string

	post.Find(selPhoto + " img").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		if src == "" || strings.Contains(src, "emoji") || xmd.IsProfileImage(src) {
			return
		}
		media = append(media, "![Image]("+xmd.LargeImageURL(src)+")")
	})

	post.Find("video").Each(func(_ int, video *goquery.Selection) {
		if poster, ok := video.Attr("poster"); ok && poster != "" {
			media = append(media, "["+xmd.VideoLabel+"]("+poster+")")
		}
	})

	return media
}
