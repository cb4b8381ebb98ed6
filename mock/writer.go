package mock

import (
	"context"

	"github.com/fwojciec/xmd"
)

var _ xmd.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of xmd.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *xmd.Document) (string, error)
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *xmd.Document) (string, error) {
	return w.WriteDocumentFn(ctx, doc)
}
