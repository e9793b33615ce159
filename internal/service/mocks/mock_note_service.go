package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"webnote/internal/model"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Get(ctx context.Context, id string) (*model.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) Save(ctx context.Context, id string, content []byte) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *MockNoteService) Render(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
