package xmd

// Converter renders the HTML of a sanitized post body as Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should already be sanitized; UI chrome is not filtered here.
	Convert(html string) (string, error)
}
