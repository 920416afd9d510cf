package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"mcq-generator/internal/adapter/extractor"
	"mcq-generator/internal/decoder"
	"mcq-generator/internal/domain"
	"mcq-generator/internal/dto"
	"mcq-generator/internal/handler"
	"mcq-generator/internal/middleware"
	"mcq-generator/internal/service"
	"mcq-generator/internal/util"
	"mcq-generator/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockGenerationService struct {
	GenerateFromFileFunc func(ctx context.Context, in service.FileInput) (*service.GenerationResult, error)
	GetSetFunc           func(ctx context.Context, id string) (*domain.StoredQuestionSet, error)
	ListSetsFunc         func(ctx context.Context, limit int) ([]*domain.StoredQuestionSet, error)
}

func (m *MockGenerationService) GenerateFromFile(ctx context.Context, in service.FileInput) (*service.GenerationResult, error) {
	if m.GenerateFromFileFunc != nil {
		return m.GenerateFromFileFunc(ctx, in)
	}
	panic("MockGenerationService.GenerateFromFileFunc not implemented")
}

func (m *MockGenerationService) GenerateFromText(ctx context.Context, src service.Source, req domain.GenerationRequest) (*service.GenerationResult, error) {
	panic("MockGenerationService.GenerateFromText not implemented")
}

func (m *MockGenerationService) GetSet(ctx context.Context, id string) (*domain.StoredQuestionSet, error) {
	if m.GetSetFunc != nil {
		return m.GetSetFunc(ctx, id)
	}
	panic("MockGenerationService.GetSetFunc not implemented")
}

func (m *MockGenerationService) ListSets(ctx context.Context, limit int) ([]*domain.StoredQuestionSet, error) {
	if m.ListSetsFunc != nil {
		return m.ListSetsFunc(ctx, limit)
	}
	panic("MockGenerationService.ListSetsFunc not implemented")
}

type MockExportService struct {
	RenderFunc       func(ctx context.Context, title string, set domain.QuestionSet) (*service.Document, error)
	RenderStoredFunc func(ctx context.Context, id, title string) (*service.Document, error)
}

func (m *MockExportService) Render(ctx context.Context, title string, set domain.QuestionSet) (*service.Document, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx, title, set)
	}
	panic("MockExportService.RenderFunc not implemented")
}

func (m *MockExportService) RenderStored(ctx context.Context, id, title string) (*service.Document, error) {
	if m.RenderStoredFunc != nil {
		return m.RenderStoredFunc(ctx, id, title)
	}
	panic("MockExportService.RenderStoredFunc not implemented")
}

func (m *MockExportService) SaveToDir(ctx context.Context, title string, set domain.QuestionSet) (string, error) {
	panic("MockExportService.SaveToDir not implemented")
}

// --- Helpers ---

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{{
		Question:    "What is 2+2?",
		Options:     []domain.Option{{Text: "3"}, {Text: "4", IsCorrect: true}, {Text: "5"}, {Text: "22"}},
		Explanation: "Basic addition.",
	}}
}

func setupApp(t *testing.T, gen *MockGenerationService, exp *MockExportService) *fiber.App {
	t.Helper()
	v := validation.NewValidator(20)
	h := handler.NewMCQHandler(gen, exp, extractor.New(), v, t.TempDir())
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h.Register(app.Group("/api"), middleware.NewValidationMiddleware(v))
	return app
}

func uploadRequest(t *testing.T, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest("POST", "/api/generate", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, r io.Reader, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(v))
}

// --- Tests ---

func TestGenerate_Success(t *testing.T) {
	var uploaded string
	gen := &MockGenerationService{
		GenerateFromFileFunc: func(ctx context.Context, in service.FileInput) (*service.GenerationResult, error) {
			uploaded = in.Path
			data, err := os.ReadFile(in.Path)
			require.NoError(t, err)
			assert.Equal(t, "lecture text", string(data))
			assert.Equal(t, "biology_notes.txt", in.Name)
			assert.Equal(t, "Biology Notes", in.Title)
			assert.Equal(t, 3, in.Count)
			assert.Equal(t, "hard", in.Difficulty)
			return &service.GenerationResult{
				ID:        "01J0000000000000000000000A",
				Title:     in.Title,
				Questions: sampleSet(),
				Tier:      decoder.TierStrict,
			}, nil
		},
	}
	app := setupApp(t, gen, &MockExportService{})

	resp, err := app.Test(uploadRequest(t, "biology_notes.txt", "lecture text", map[string]string{
		"num_questions": "3",
		"difficulty":    "hard",
	}), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body dto.GenerateResponse
	decodeJSON(t, resp.Body, &body)
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "strict", body.Tier)
	assert.Equal(t, sampleSet(), body.MCQs)

	_, statErr := os.Stat(uploaded)
	assert.True(t, os.IsNotExist(statErr), "uploaded file should be removed")
}

func TestGenerate_RequestErrors(t *testing.T) {
	app := setupApp(t, &MockGenerationService{}, &MockExportService{})

	tests := []struct {
		name     string
		fileName string
		fields   map[string]string
		status   int
		code     string
	}{
		{name: "missing file", status: fiber.StatusBadRequest, code: "INVALID_INPUT"},
		{name: "unsupported type", fileName: "slides.pptx", status: fiber.StatusBadRequest, code: "INVALID_INPUT"},
		{name: "bad count", fileName: "a.txt", fields: map[string]string{"num_questions": "abc"}, status: fiber.StatusBadRequest, code: "VALIDATION_FAILED"},
		{name: "bad difficulty", fileName: "a.txt", fields: map[string]string{"difficulty": "impossible"}, status: fiber.StatusBadRequest, code: "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(uploadRequest(t, tt.fileName, "x", tt.fields), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body map[string]interface{}
			decodeJSON(t, resp.Body, &body)
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestGenerate_PipelineErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"too short", domain.NewTooShortError(10, 100), fiber.StatusUnprocessableEntity, "TOO_SHORT"},
		{"extraction", domain.NewExtractionError("failed to extract text from pdf file", errors.New("corrupt")), fiber.StatusUnprocessableEntity, "EXTRACTION_ERROR"},
		{"generation", domain.NewGenerationError("generation backend request failed", errors.New("quota")), fiber.StatusServiceUnavailable, "GENERATION_ERROR"},
		{"decode", domain.NewDecodeError(errors.New("s"), errors.New("l")), fiber.StatusBadGateway, "DECODE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &MockGenerationService{
				GenerateFromFileFunc: func(ctx context.Context, in service.FileInput) (*service.GenerationResult, error) {
					return nil, tt.err
				},
			}
			app := setupApp(t, gen, &MockExportService{})

			resp, err := app.Test(uploadRequest(t, "notes.pdf", "%PDF", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body middleware.ErrorResponse
			decodeJSON(t, resp.Body, &body)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestExport_Success(t *testing.T) {
	exp := &MockExportService{
		RenderFunc: func(ctx context.Context, title string, set domain.QuestionSet) (*service.Document, error) {
			assert.Equal(t, "Unit 1", title)
			assert.Equal(t, sampleSet(), set)
			return &service.Document{FileName: "Unit_1.pdf", Title: title, Data: []byte("%PDF-1.3")}, nil
		},
	}
	app := setupApp(t, &MockGenerationService{}, exp)

	payload, err := json.Marshal(dto.ExportRequest{MCQs: sampleSet(), Title: "Unit 1"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/export", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Unit_1.pdf"`, resp.Header.Get("Content-Disposition"))
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestExport_Rejected(t *testing.T) {
	exp := &MockExportService{
		RenderFunc: func(ctx context.Context, title string, set domain.QuestionSet) (*service.Document, error) {
			return nil, domain.NewInvalidInputError("No MCQs to export")
		},
	}
	app := setupApp(t, &MockGenerationService{}, exp)

	for _, body := range []string{`{"mcqs": [], "title": "x"}`, `not json`} {
		req := httptest.NewRequest("POST", "/api/export", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
		resp.Body.Close()
	}
}

func TestListSets(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	gen := &MockGenerationService{
		ListSetsFunc: func(ctx context.Context, limit int) ([]*domain.StoredQuestionSet, error) {
			assert.Equal(t, 5, limit)
			return []*domain.StoredQuestionSet{{
				ID: "01J0000000000000000000000A", Title: "Bio", SourceName: "bio.pdf",
				Difficulty: domain.DifficultyEasy, Questions: sampleSet(), CreatedAt: created,
			}}, nil
		},
	}
	app := setupApp(t, gen, &MockExportService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/mcq-sets?limit=5", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body dto.SetListResponse
	decodeJSON(t, resp.Body, &body)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Bio", body.Sets[0].Title)
	assert.Equal(t, 1, body.Sets[0].QuestionCount)
	assert.Equal(t, "easy", body.Sets[0].Difficulty)
}

func TestGetSet(t *testing.T) {
	id := util.NewULID()
	gen := &MockGenerationService{
		GetSetFunc: func(ctx context.Context, got string) (*domain.StoredQuestionSet, error) {
			if got != id {
				return nil, domain.NewNotFoundError("question set not found")
			}
			return &domain.StoredQuestionSet{ID: id, Title: "Bio", RequestedCount: 3, DecodeTier: "lenient", Questions: sampleSet()}, nil
		},
	}
	app := setupApp(t, gen, &MockExportService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/mcq-sets/"+id, nil), -1)
	require.NoError(t, err)
	var body dto.SetDetailResponse
	decodeJSON(t, resp.Body, &body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body.ID)
	assert.Equal(t, 3, body.RequestedCount)
	assert.Equal(t, "lenient", body.Tier)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/mcq-sets/"+util.NewULID(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest("GET", "/api/mcq-sets/bogus", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestExportSet(t *testing.T) {
	id := util.NewULID()
	exp := &MockExportService{
		RenderStoredFunc: func(ctx context.Context, got, title string) (*service.Document, error) {
			assert.Equal(t, id, got)
			assert.Equal(t, "Final Review", title)
			return &service.Document{FileName: "Final_Review.pdf", Data: []byte("%PDF")}, nil
		},
	}
	app := setupApp(t, &MockGenerationService{}, exp)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/mcq-sets/"+id+"/export?title=Final%20Review", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Final_Review.pdf")
}
