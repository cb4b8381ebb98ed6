// Package xmd converts rendered X (Twitter) pages into portable Markdown.
// It classifies a page as a tweet, a same-author thread, or a long-form
// article, renders the content as Markdown, and produces a small structured
// record alongside it.
//
// This package contains domain types, interfaces, and the pure text logic
// shared by every implementation. Implementations live in subdirectories
// named after their primary dependency (e.g., goquery/, htmltomarkdown/, rod/).
package xmd

// SiteURL is the canonical origin used to resolve root-relative links.
const SiteURL = "https://x.com"
