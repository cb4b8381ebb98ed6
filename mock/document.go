package mock

import (
	"context"

	"github.com/fwojciec/xmd"
)

var _ xmd.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of xmd.DocumentStore.
type DocumentStore struct {
	SaveDocumentFn     func(ctx context.Context, doc *xmd.Document) (*xmd.SavedDocument, error)
	FindDocumentByIDFn func(ctx context.Context, id string) (*xmd.SavedDocument, error)
	FindDocumentsFn    func(ctx context.Context, filter xmd.DocumentFilter) ([]*xmd.SavedDocument, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentStore) SaveDocument(ctx context.Context, doc *xmd.Document) (*xmd.SavedDocument, error) {
	return s.SaveDocumentFn(ctx, doc)
}

func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*xmd.SavedDocument, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentStore) FindDocuments(ctx context.Context, filter xmd.DocumentFilter) ([]*xmd.SavedDocument, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
