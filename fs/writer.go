// Package fs provides file-based storage for extracted documents.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/xmd"
	"gopkg.in/yaml.v3"
)

// MaxFilenameLength bounds sanitized file names.
const MaxFilenameLength = 200

var (
	invalidFilenameRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
	hyphenRunRe       = regexp.MustCompile(`-{2,}`)
)

// SanitizeFilename makes name safe to use as a single path element.
// Reserved characters become "_", whitespace runs become "-", and the
// result is trimmed of hyphens and truncated to MaxFilenameLength bytes.
func SanitizeFilename(name string) string {
	name = invalidFilenameRe.ReplaceAllString(name, "_")
	name = whitespaceRe.ReplaceAllString(name, "-")
	name = hyphenRunRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if len(name) > MaxFilenameLength {
		name = name[:MaxFilenameLength]
	}
	return name
}

// frontmatter is the YAML header written before the Markdown body.
type frontmatter struct {
	Kind   xmd.Kind `yaml:"kind"`
	Author string   `yaml:"author"`
	Handle string   `yaml:"handle"`
	Title  string   `yaml:"title,omitempty"`
	Source string   `yaml:"source"`
	Date   string   `yaml:"date"`
	PostID string   `yaml:"post_id"`
}

// FormatDocument renders a document as file content, optionally preceded by
// YAML frontmatter.
func FormatDocument(doc *xmd.Document, withFrontmatter bool) (string, error) {
	if !withFrontmatter {
		return doc.Body + "\n", nil
	}

	header, err := yaml.Marshal(frontmatter{
		Kind:   doc.Kind,
		Author: doc.Author.Name,
		Handle: doc.Author.Handle,
		Title:  doc.Title,
		Source: doc.SourceURL,
		Date:   doc.PublishedAt,
		PostID: doc.PostID,
	})
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Body)
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure Writer implements xmd.DocumentWriter at compile time.
var _ xmd.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir     string
	frontmatter bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithFrontmatter prepends YAML frontmatter with the document metadata.
func WithFrontmatter(enabled bool) WriterOption {
	return func(w *Writer) {
		w.frontmatter = enabled
	}
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, opts ...WriterOption) *Writer {
	w := &Writer{baseDir: baseDir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteDocument writes a document to disk under its suggested file name and
// returns the path written. The file is replaced atomically.
func (w *Writer) WriteDocument(ctx context.Context, doc *xmd.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}

	name := SanitizeFilename(xmd.Filename(doc))
	if name == "" || name == ".md" {
		return "", xmd.Errorf(xmd.EINVALID, "document has no usable file name")
	}

	content, err := FormatDocument(doc, w.frontmatter)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, name)
	tmp, err := os.CreateTemp(w.baseDir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return fullPath, nil
}
