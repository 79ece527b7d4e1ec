package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"periciapi/internal/model"
)

type MockPericiaRepository struct {
	mock.Mock
}

func (m *MockPericiaRepository) List(ctx context.Context) ([]model.Pericia, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pericia), args.Error(1)
}

func (m *MockPericiaRepository) Get(ctx context.Context, id int64) (*model.Pericia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pericia), args.Error(1)
}

func (m *MockPericiaRepository) Save(ctx context.Context, p *model.Pericia) (*model.Pericia, error) {
	args := m.Called(ctx, p)
	if f, ok := args.Get(0).(func(context.Context, *model.Pericia) *model.Pericia); ok {
		return f(ctx, p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pericia), args.Error(1)
}

func (m *MockPericiaRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMacroRepository struct {
	mock.Mock
}

func (m *MockMacroRepository) List(ctx context.Context) ([]model.Macro, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Macro), args.Error(1)
}

func (m *MockMacroRepository) Add(ctx context.Context, macro model.Macro) (model.Macro, error) {
	args := m.Called(ctx, macro)
	return args.Get(0).(model.Macro), args.Error(1)
}

func (m *MockMacroRepository) Delete(ctx context.Context, id model.FlexID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]model.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Template), args.Error(1)
}

func (m *MockTemplateRepository) Add(ctx context.Context, t model.Template) (model.Template, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Template), args.Error(1)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id model.FlexID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (model.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s model.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Get(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockDraftRepository) Save(ctx context.Context, draft json.RawMessage) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
