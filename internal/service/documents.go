package service

import (
	"bytes"
	"context"
	"sync"

	"go.uber.org/zap"
)

// MaxDocumentSize is the upload limit for identity documents
const MaxDocumentSize = 5 * 1024 * 1024

const (
	msgDocumentTooLarge = "File size must be less than 5MB"
	msgDocumentType     = "Only JPEG, PNG, and PDF files are allowed"
)

var allowedDocumentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// Document is an identity image or scan attached to a form field
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// problem returns the field message for an unacceptable document
func (d *Document) problem() string {
	if len(d.Data) > MaxDocumentSize {
		return msgDocumentTooLarge
	}
	if !allowedDocumentTypes[d.ContentType] {
		return msgDocumentType
	}
	return ""
}

// uploadAll uploads docs concurrently and waits for every one to settle.
// A nil or failed document yields nil at its index.
func (s *checkoutService) uploadAll(ctx context.Context, docs []*Document) []*string {
	out := make([]*string, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		wg.Add(1)
		go func(i int, doc *Document) {
			defer wg.Done()
			path, err := s.backend.Upload(ctx, doc.Filename, doc.ContentType, bytes.NewReader(doc.Data))
			if err != nil {
				s.logger.Warn("Document upload failed, continuing without it",
					zap.String("filename", doc.Filename),
					zap.Error(err))
				return
			}
			out[i] = &path
		}(i, doc)
	}
	wg.Wait()
	return out
}

// fieldKey names a field of a repeated form entry
func fieldKey(entry, field string) string {
	return entry + "-" + field
}
