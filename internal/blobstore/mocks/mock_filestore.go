package mocks

import (
	"context"

	"periciapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Init(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFileStore) SaveFile(ctx context.Context, id model.FlexID, content string) (model.FlexID, error) {
	args := m.Called(ctx, id, content)
	return args.Get(0).(model.FlexID), args.Error(1)
}

func (m *MockFileStore) GetFile(ctx context.Context, id model.FlexID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) DeleteFile(ctx context.Context, id model.FlexID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFileStore) GetAllFiles(ctx context.Context) ([]model.Arquivo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Arquivo), args.Error(1)
}

func (m *MockFileStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
