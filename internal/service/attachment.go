package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"webnote/internal/config"
	"webnote/internal/model"
	"webnote/internal/storage"
)

var timeNow = time.Now

// imageExts are the extensions the note page can inline as images.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".bmp": true, ".svg": true,
}

// AttachmentService defines the use cases for uploaded files.
type AttachmentService interface {
	// Upload stores the content under a timestamped, sanitized name and
	// returns the attachment's access URL. The configured size and
	// file-count limits are checked before anything is written, so a
	// rejected upload never creates a file.
	Upload(ctx context.Context, r io.Reader, originalFilename string, size int64) (*model.Attachment, error)

	// Open returns a stored attachment's content and info by stored name.
	Open(ctx context.Context, name string) (io.ReadCloser, storage.FileInfo, error)
}

// attachmentService is a concrete implementation of AttachmentService.
type attachmentService struct {
	store  storage.Storage
	limits config.StorageConfig
}

// NewAttachmentService constructs a new AttachmentService.
func NewAttachmentService(store storage.Storage, limits config.StorageConfig) AttachmentService {
	return &attachmentService{store: store, limits: limits}
}

func (s *attachmentService) Upload(ctx context.Context, r io.Reader, originalFilename string, size int64) (*model.Attachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if size > int64(s.limits.SingleFileSizeLimit) {
		return nil, ErrContentTooLarge
	}
	count, err := s.store.CountFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}
	if count >= s.limits.FileLimit {
		return nil, ErrFileLimitReached
	}

	// Timestamp prefix keeps repeated uploads of the same file from
	// clobbering each other.
	name := fmt.Sprintf("%d_%s", timeNow().Unix(), sanitizeFilename(originalFilename))
	if _, err := s.store.SaveAttachment(ctx, name, r); err != nil {
		return nil, fmt.Errorf("save attachment: %w", err)
	}

	return &model.Attachment{
		Name:    name,
		URL:     "/_tmp/" + name,
		IsImage: imageExts[strings.ToLower(filepath.Ext(name))],
	}, nil
}

func (s *attachmentService) Open(ctx context.Context, name string) (io.ReadCloser, storage.FileInfo, error) {
	return s.store.OpenAttachment(ctx, name)
}

// sanitizeFilename strips characters that are unsafe in file names on common
// filesystems.
func sanitizeFilename(name string) string {
	out := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if out == "" {
		out = "file"
	}
	return out
}
