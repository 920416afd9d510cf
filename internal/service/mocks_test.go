package service

import (
	"context"
	"io"
	"time"

	"mcq-generator/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockExtractor ---
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockExtractor) SupportedExtensions() []string {
	return []string{"docx", "pdf", "txt"}
}

// --- MockGenerator ---
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) ModelName() string {
	return "test-model"
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuestionSetRepository ---
type MockQuestionSetRepository struct {
	mock.Mock
}

func (m *MockQuestionSetRepository) Save(ctx context.Context, set *domain.StoredQuestionSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockQuestionSetRepository) GetByID(ctx context.Context, id string) (*domain.StoredQuestionSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredQuestionSet), args.Error(1)
}

func (m *MockQuestionSetRepository) ListRecent(ctx context.Context, limit int) ([]*domain.StoredQuestionSet, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StoredQuestionSet), args.Error(1)
}

// --- MockExporter ---
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Write(w io.Writer, set domain.QuestionSet, title string) error {
	args := m.Called(w, set, title)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write([]byte("%PDF-1.3 test"))
	return err
}

func (m *MockExporter) Export(set domain.QuestionSet, title string) (string, error) {
	args := m.Called(set, title)
	return args.String(0), args.Error(1)
}
