package xmd

import (
	"net/url"
	"regexp"
	"strings"
)

// ShortLinkHost is the default link-shortener host whose anchors are
// resolved to their display URL.
const ShortLinkHost = "t.co"

// VideoLabel labels every rendered video link.
const VideoLabel = "🎥 Video"

var (
	profilePathRe = regexp.MustCompile(`^/([A-Za-z0-9_]+)$`)
	statusPathRe  = regexp.MustCompile(`/status/(\d+)`)
	sizeParamRe   = regexp.MustCompile(`([?&]name=)\w+`)
)

// ProfileHandle returns the handle named by an internal profile path such
// as "/jack". It reports false for any other href.
func ProfileHandle(href string) (string, bool) {
	m := profilePathRe.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsStatusURL reports whether rawURL points at a single-post view.
func IsStatusURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.Contains(rawURL, "/status/")
	}
	return strings.Contains(u.Path, "/status/")
}

// PostID returns the numeric post identifier in a status URL, or "unknown".
func PostID(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	if m := statusPathRe.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return UnknownHandle
}

// ResolveHref turns protocol-relative and root-relative hrefs into absolute
// URLs on SiteURL. Other hrefs are returned unchanged.
func ResolveHref(href string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return SiteURL + href
	}
	return href
}

// LooksLikeURL reports whether s reads as an absolute web address.
func LooksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http")
}

// IsEmojiImage reports whether src is an emoji sprite rather than content.
func IsEmojiImage(src string) bool {
	return strings.Contains(src, "twimg.com/emoji") || strings.Contains(src, "abs-0.twimg.com")
}

// IsProfileImage reports whether src is an avatar.
func IsProfileImage(src string) bool {
	return strings.Contains(src, "profile_images")
}

// LargeImageURL rewrites the size parameter of a media CDN URL to "large".
// URLs on other hosts are returned unchanged.
func LargeImageURL(src string) string {
	if !strings.Contains(src, "pbs.twimg.com") {
		return src
	}
	return sizeParamRe.ReplaceAllString(src, "${1}large")
}

// CanonicalURL normalizes a status URL for deduplication: lowercase host,
// twitter.com folded into x.com, no query or fragment, no trailing slash.
func CanonicalURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(rawURL)
	}
	return "https://" + CanonicalHost(u.Host) + strings.TrimSuffix(u.Path, "/")
}

// CanonicalHost folds the hosts that serve the same site into one name:
// lowercase, no www. or mobile. prefix, twitter.com as x.com. Other hosts
// are only lowercased and stripped of those prefixes.
func CanonicalHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "mobile.")
	if host == "twitter.com" {
		host = "x.com"
	}
	return host
}
