package mock

import "github.com/fwojciec/xmd"

var _ xmd.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of xmd.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*xmd.Document, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*xmd.Document, error) {
	return e.ExtractFn(html, pageURL)
}
