package xmd

// Extractor turns the rendered HTML of a page into a Document.
type Extractor interface {
	// Extract classifies the page at pageURL and renders it.
	// Returns ENOTPOSTPAGE when pageURL is not a single-post view and
	// EARTICLEBODY when an article page has no body container. A tweet page
	// without any post element is not an error: the document carries
	// PlaceholderBody instead.
	Extract(html string, pageURL string) (*Document, error)
}
