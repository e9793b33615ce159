package service

import (
	"context"
	"errors"
	"fmt"

	"webnote/internal/config"
	"webnote/internal/markdown"
	"webnote/internal/model"
	"webnote/internal/noteid"
	"webnote/internal/storage"
)

var (
	ErrInvalidID        = errors.New("invalid note id")
	ErrContentTooLarge  = errors.New("content exceeds the single file size limit")
	ErrFileLimitReached = errors.New("file limit reached")
	ErrReaderNil        = errors.New("reader is nil")
)

// NoteService defines the use cases for reading and writing notes.
type NoteService interface {
	// Get returns the note for the given ID. A note that was never written
	// reads as empty content, not as an error.
	Get(ctx context.Context, id string) (*model.Note, error)

	// Save overwrites the note with content, enforcing the configured size
	// and file-count limits. Empty content deletes the note file.
	Save(ctx context.Context, id string, content []byte) error

	// Render returns the note's content rendered from Markdown to HTML.
	Render(ctx context.Context, id string) ([]byte, error)
}

// noteService is a concrete implementation of NoteService.
type noteService struct {
	store  storage.Storage
	md     *markdown.Renderer
	limits config.StorageConfig
}

// NewNoteService constructs a new NoteService.
func NewNoteService(store storage.Storage, md *markdown.Renderer, limits config.StorageConfig) NoteService {
	return &noteService{store: store, md: md, limits: limits}
}

func (s *noteService) Get(ctx context.Context, id string) (*model.Note, error) {
	if !noteid.Valid(id) {
		return nil, ErrInvalidID
	}
	content, err := s.store.ReadNote(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &model.Note{ID: id}, nil
		}
		return nil, fmt.Errorf("read note: %w", err)
	}
	return &model.Note{ID: id, Content: content}, nil
}

func (s *noteService) Save(ctx context.Context, id string, content []byte) error {
	if !noteid.Valid(id) {
		return ErrInvalidID
	}
	// An empty save is a delete; it never creates a file, so the limits do
	// not apply to it.
	if len(content) == 0 {
		return s.store.RemoveNote(ctx, id)
	}
	if len(content) > s.limits.SingleFileSizeLimit {
		return ErrContentTooLarge
	}
	count, err := s.store.CountFiles(ctx)
	if err != nil {
		return fmt.Errorf("count files: %w", err)
	}
	if count >= s.limits.FileLimit {
		return ErrFileLimitReached
	}
	if err := s.store.WriteNote(ctx, id, content); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}

func (s *noteService) Render(ctx context.Context, id string) ([]byte, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := s.md.Render(note.Content)
	if err != nil {
		return nil, err
	}
	return html, nil
}
