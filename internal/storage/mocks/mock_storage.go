package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"webnote/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) ReadNote(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) WriteNote(ctx context.Context, id string, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockStorage) RemoveNote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) SaveAttachment(ctx context.Context, name string, r io.Reader) (storage.FileInfo, error) {
	args := m.Called(ctx, name, r)
	if f, ok := args.Get(0).(func(ctx context.Context, name string, r io.Reader) storage.FileInfo); ok {
		return f(ctx, name, r), args.Error(1)
	}
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockStorage) OpenAttachment(ctx context.Context, name string) (io.ReadCloser, storage.FileInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.FileInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.FileInfo), args.Error(2)
}

func (m *MockStorage) CountFiles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
