package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"periciapi/internal/model"
	"periciapi/internal/service"
)

type MockPericiaService struct {
	mock.Mock
}

func (m *MockPericiaService) List(ctx context.Context) ([]model.Pericia, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pericia), args.Error(1)
}

func (m *MockPericiaService) Get(ctx context.Context, id int64) (*model.Pericia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pericia), args.Error(1)
}

func (m *MockPericiaService) Save(ctx context.Context, data map[string]any) (*model.Pericia, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pericia), args.Error(1)
}

func (m *MockPericiaService) Finalize(ctx context.Context, id int64) (*model.Pericia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pericia), args.Error(1)
}

func (m *MockPericiaService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPericiaService) AttachDocument(ctx context.Context, id int64, content, originalName string) (*model.Pericia, error) {
	args := m.Called(ctx, id, content, originalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pericia), args.Error(1)
}

func (m *MockPericiaService) RemoveDocument(ctx context.Context, id int64, docID model.FlexID) (*model.Pericia, error) {
	args := m.Called(ctx, id, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pericia), args.Error(1)
}

type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Export(ctx context.Context, passphrase string) (*service.ExportResult, error) {
	args := m.Called(ctx, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockBackupService) Import(ctx context.Context, content []byte, passphrase string) error {
	args := m.Called(ctx, content, passphrase)
	return args.Error(0)
}
