package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/xmd"
)

// Ensure LoggingExtractor implements xmd.Extractor.
var _ xmd.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   xmd.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next xmd.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the document kind and
// author, or the error code on failure.
func (e *LoggingExtractor) Extract(html string, pageURL string) (doc *xmd.Document, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", pageURL,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			e.logger.Info("extract", append(attrs, "code", xmd.ErrorCode(err), "err", err)...)
			return
		}
		e.logger.Info("extract", append(attrs,
			"kind", doc.Kind,
			"handle", doc.Author.Handle,
			"markdown_bytes", len(doc.Body),
		)...)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
