package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/xmd"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ xmd.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements xmd.DocumentStore using SQLite.
type DocumentStore struct {
	db  *DB
	now func() time.Time
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db, now: time.Now}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

const documentColumns = `id, post_id, kind, author_name, author_handle, title, body, source_url, published_at, content_hash, saved_at`

// SaveDocument archives a document. If the newest archived version of the
// same post has an identical body, that record is returned unchanged.
func (s *DocumentStore) SaveDocument(ctx context.Context, doc *xmd.Document) (*xmd.SavedDocument, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	hash := hashContent(doc.Body)

	existing, err := s.findLatest(ctx, doc.PostID, doc.SourceURL)
	if err != nil && xmd.ErrorCode(err) != xmd.ENOTFOUND {
		return nil, err
	}
	if existing != nil && existing.ContentHash == hash {
		return existing, nil
	}

	saved := &xmd.SavedDocument{
		ID:          uuid.New().String(),
		Document:    *doc,
		ContentHash: hash,
		SavedAt:     s.now().UTC().Truncate(time.Second),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, saved.ID, doc.PostID, string(doc.Kind), doc.Author.Name, doc.Author.Handle, doc.Title,
		doc.Body, doc.SourceURL, doc.PublishedAt, hash, saved.SavedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// findLatest returns the most recently saved version of a post. Posts with
// an unknown id are matched by source URL instead.
func (s *DocumentStore) findLatest(ctx context.Context, postID, sourceURL string) (*xmd.SavedDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE post_id = ? ORDER BY rowid DESC LIMIT 1`
	arg := postID
	if postID == "" || postID == xmd.UnknownHandle {
		query = `SELECT ` + documentColumns + ` FROM documents WHERE source_url = ? ORDER BY rowid DESC LIMIT 1`
		arg = sourceURL
	}
	return scanDocument(s.db.QueryRowContext(ctx, query, arg))
}

// FindDocumentByID retrieves an archived document by ID.
func (s *DocumentStore) FindDocumentByID(ctx context.Context, id string) (*xmd.SavedDocument, error) {
	return scanDocument(s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = ?
	`, id))
}

// FindDocuments retrieves archived documents matching the filter, most
// recently saved first. Handles match case-insensitively.
func (s *DocumentStore) FindDocuments(ctx context.Context, filter xmd.DocumentFilter) ([]*xmd.SavedDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.Handle != nil {
		query.WriteString(" AND author_handle = ? COLLATE NOCASE")
		args = append(args, normalizeHandle(*filter.Handle))
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.PostID != nil {
		query.WriteString(" AND post_id = ?")
		args = append(args, *filter.PostID)
	}

	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*xmd.SavedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes an archived document.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return xmd.Errorf(xmd.ENOTFOUND, "document not found")
	}

	return nil
}

// normalizeHandle accepts handles with or without the leading "@".
func normalizeHandle(handle string) string {
	if handle == "" || strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*xmd.SavedDocument, error) {
	var doc xmd.SavedDocument
	var kind, savedAt string

	err := row.Scan(&doc.ID, &doc.Document.PostID, &kind, &doc.Document.Author.Name,
		&doc.Document.Author.Handle, &doc.Document.Title, &doc.Document.Body,
		&doc.Document.SourceURL, &doc.Document.PublishedAt, &doc.ContentHash, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xmd.Errorf(xmd.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.Document.Kind = xmd.Kind(kind)
	doc.SavedAt, err = parseRFC3339(savedAt, "saved_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
