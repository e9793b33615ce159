package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"webnote/internal/config"
)

// ErrInvalidName is returned for file names that would escape the save directory.
var ErrInvalidName = errors.New("storage: invalid file name")

// diskStorage implements the Storage interface on the local filesystem.
// Every note and attachment is a regular file directly under the save
// directory. It is safe for concurrent use; concurrent writers to the same
// file are last-write-wins.
type diskStorage struct {
	dir string
}

// NewDisk creates a filesystem-backed storage rooted at the configured save
// path. The directory is created if missing.
func NewDisk(cfg config.StorageConfig) (Storage, error) {
	if cfg.SavePath == "" {
		return nil, fmt.Errorf("save path is required")
	}
	if err := os.MkdirAll(cfg.SavePath, 0o755); err != nil {
		return nil, fmt.Errorf("create save path: %w", err)
	}
	return &diskStorage{dir: cfg.SavePath}, nil
}

// entryPath resolves name inside the save directory, rejecting anything that
// could traverse out of it.
func (d *diskStorage) entryPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", ErrInvalidName
	}
	return filepath.Join(d.dir, name), nil
}

func (d *diskStorage) ReadNote(_ context.Context, id string) ([]byte, error) {
	p, err := d.entryPath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read note: %w", err)
	}
	return data, nil
}

func (d *diskStorage) WriteNote(_ context.Context, id string, data []byte) error {
	p, err := d.entryPath(id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

func (d *diskStorage) RemoveNote(_ context.Context, id string) error {
	p, err := d.entryPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove note: %w", err)
	}
	return nil
}

func (d *diskStorage) SaveAttachment(_ context.Context, name string, r io.Reader) (FileInfo, error) {
	p, err := d.entryPath(name)
	if err != nil {
		return FileInfo{}, err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return FileInfo{}, fmt.Errorf("create attachment: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Do not leave a truncated file behind.
		_ = os.Remove(p)
		return FileInfo{}, fmt.Errorf("write attachment: %w", err)
	}
	return FileInfo{
		Name:        name,
		Size:        n,
		ContentType: contentTypeFor(name),
	}, nil
}

func (d *diskStorage) OpenAttachment(_ context.Context, name string) (io.ReadCloser, FileInfo, error) {
	p, err := d.entryPath(name)
	if err != nil {
		return nil, FileInfo{}, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, FileInfo{}, ErrNotFound
		}
		return nil, FileInfo{}, fmt.Errorf("open attachment: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, FileInfo{}, fmt.Errorf("stat attachment: %w", err)
	}
	info := FileInfo{
		Name:         name,
		Size:         st.Size(),
		ContentType:  contentTypeFor(name),
		LastModified: st.ModTime(),
	}
	return f, info, nil
}

func (d *diskStorage) CountFiles(_ context.Context) (int, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return 0, fmt.Errorf("read save path: %w", err)
	}
	count := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			count++
		}
	}
	return count, nil
}

func (d *diskStorage) Ping(_ context.Context) error {
	st, err := os.Stat(d.dir)
	if err != nil {
		return fmt.Errorf("stat save path: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("save path %q is not a directory", d.dir)
	}
	return nil
}

// contentTypeFor guesses a content type from the file extension.
func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
