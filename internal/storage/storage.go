package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains the persistence abstraction for notes and
// uploaded files. The data model is one regular file per entry inside a
// single save directory; implementations stream file content and never hold
// it in memory beyond what the caller reads.

// ErrNotFound is returned when a note or attachment does not exist.
var ErrNotFound = errors.New("storage: not found")

// FileInfo contains basic information about a stored file.
type FileInfo struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage persists notes and attachments under a shared save directory.
// Note IDs and attachment names are used directly as file names; callers are
// responsible for ID validation, implementations for path safety.
type Storage interface {
	// ReadNote returns the note's content, or ErrNotFound if no file exists.
	ReadNote(ctx context.Context, id string) ([]byte, error)
	// WriteNote overwrites the note file with data.
	WriteNote(ctx context.Context, id string, data []byte) error
	// RemoveNote deletes the note file. Removing a missing note is not an error.
	RemoveNote(ctx context.Context, id string) error

	// SaveAttachment streams r into a new file under the save directory.
	SaveAttachment(ctx context.Context, name string, r io.Reader) (FileInfo, error)
	// OpenAttachment opens a stored file for reading alongside its info.
	// Returns ErrNotFound if no file exists.
	OpenAttachment(ctx context.Context, name string) (io.ReadCloser, FileInfo, error)

	// CountFiles returns the number of regular files in the save directory
	// (notes and attachments alike).
	CountFiles(ctx context.Context) (int, error)
	// Ping verifies the save directory is usable.
	Ping(ctx context.Context) error
}
