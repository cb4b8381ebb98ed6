package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/xmd"
)

// Ensure LoggingDocumentWriter implements xmd.DocumentWriter.
var _ xmd.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with debug logging.
type LoggingDocumentWriter struct {
	next   xmd.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next xmd.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer and logs the destination.
func (w *LoggingDocumentWriter) WriteDocument(ctx context.Context, doc *xmd.Document) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"post_id", doc.PostID,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocument(ctx, doc)
}
