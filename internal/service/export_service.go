package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mcq-generator/internal/adapter/exporter"
	"mcq-generator/internal/domain"
	"mcq-generator/internal/logger"

	"go.uber.org/zap"
)

// Document is a rendered export ready to be sent or written.
type Document struct {
	FileName string
	Title    string
	Data     []byte
}

// ExportService renders question sets into PDF documents.
type ExportService interface {
	// Render rejects empty sets and sets with any invalid question.
	Render(ctx context.Context, title string, set domain.QuestionSet) (*Document, error)
	RenderStored(ctx context.Context, id, title string) (*Document, error)
	// SaveToDir writes the document to the exporter's directory and returns the path.
	SaveToDir(ctx context.Context, title string, set domain.QuestionSet) (string, error)
}

type exportServiceImpl struct {
	exporter domain.Exporter
	sets     GenerationService
}

func NewExportService(exp domain.Exporter, sets GenerationService) ExportService {
	return &exportServiceImpl{exporter: exp, sets: sets}
}

func checkExportable(set domain.QuestionSet) error {
	if len(set) == 0 {
		return domain.NewInvalidInputError("No MCQs to export")
	}
	_, warnings := domain.ValidateQuestionSet(set)
	if len(warnings) == 0 {
		return nil
	}
	errs := make(domain.ValidationErrors, len(warnings))
	for i, w := range warnings {
		errs[i] = domain.FieldError{Field: fmt.Sprintf("mcqs[%d]", w.Index), Message: w.Reason}
	}
	return errs
}

func resolveTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return exporter.DefaultTitle
}

func (s *exportServiceImpl) Render(ctx context.Context, title string, set domain.QuestionSet) (*Document, error) {
	if err := checkExportable(set); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	title = resolveTitle(title)

	var buf bytes.Buffer
	if err := s.exporter.Write(&buf, set, title); err != nil {
		return nil, domain.NewInternalError("failed to render PDF", err)
	}
	logger.Get().Info("Rendered PDF export",
		zap.String("title", title),
		zap.Int("questions", len(set)),
		zap.Int("bytes", buf.Len()))

	return &Document{
		FileName: exporter.DownloadName(title),
		Title:    title,
		Data:     buf.Bytes(),
	}, nil
}

// RenderStored renders an archived set. An empty title falls back to the
// title stored with the set.
func (s *exportServiceImpl) RenderStored(ctx context.Context, id, title string) (*Document, error) {
	stored, err := s.sets.GetSet(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = stored.Title
	}
	return s.Render(ctx, title, stored.Questions)
}

func (s *exportServiceImpl) SaveToDir(ctx context.Context, title string, set domain.QuestionSet) (string, error) {
	if err := checkExportable(set); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.exporter.Export(set, resolveTitle(title))
	if err != nil {
		return "", domain.NewInternalError("failed to export PDF", err)
	}
	logger.Get().Info("Exported PDF", zap.String("path", path), zap.Int("questions", len(set)))
	return path, nil
}
