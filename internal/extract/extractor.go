package extract

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

// RawDocument is an extracted unit before sanitization. Metadata carries
// whatever the extraction backend knows about the source.
type RawDocument struct {
	Content  string
	Metadata map[string]string
}

// Source yields raw documents from some corpus location.
type Source interface {
	Extract(ctx context.Context) ([]RawDocument, error)
}

// Sanitize narrows each document's metadata down to the single origin field.
// This is a deliberate information-loss boundary: whatever extraction backend
// produced the document, downstream components only ever see origin.
func Sanitize(raws []RawDocument) []domain.Document {
	docs := make([]domain.Document, 0, len(raws))
	for _, raw := range raws {
		origin := raw.Metadata["source"]
		if origin == "" {
			origin = "unknown"
		}
		docs = append(docs, domain.Document{
			Content: raw.Content,
			Origin:  origin,
		})
	}
	return docs
}

// DirectorySource loads documents from files under a local directory whose
// base names match a glob pattern.
type DirectorySource struct {
	root    string
	pattern string
}

// NewDirectorySource validates the source location up front so a bad path
// fails ingestion before any indexing work starts.
func NewDirectorySource(root, pattern string) (*DirectorySource, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeNotFound,
				fmt.Sprintf("knowledge base directory not found: %s", root),
				domain.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation,
			fmt.Sprintf("expected directory but found file: %s", root),
			domain.ErrSourceNotADirectory)
	}
	if pattern == "" {
		pattern = "*"
	}
	return &DirectorySource{root: root, pattern: pattern}, nil
}

// Extract walks the directory and produces one raw document per matching
// file. Source files are only read, never modified.
func (s *DirectorySource) Extract(ctx context.Context) ([]RawDocument, error) {
	log.Printf("extract: loading documents from %s (pattern %q)", s.root, s.pattern)

	var docs []RawDocument
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		matched, err := filepath.Match(s.pattern, d.Name())
		if err != nil {
			return fmt.Errorf("invalid file pattern %q: %w", s.pattern, err)
		}
		if !matched {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		docs = append(docs, RawDocument{
			Content: string(content),
			Metadata: map[string]string{
				"source":   path,
				"size":     strconv.FormatInt(info.Size(), 10),
				"modified": info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("extract: loaded %d documents", len(docs))
	return docs, nil
}

// LoadKnowledgeBase extracts and sanitizes all matching documents from a
// directory in one call.
func LoadKnowledgeBase(ctx context.Context, root, pattern string) ([]domain.Document, error) {
	source, err := NewDirectorySource(root, pattern)
	if err != nil {
		return nil, err
	}
	raws, err := source.Extract(ctx)
	if err != nil {
		return nil, err
	}
	return Sanitize(raws), nil
}
