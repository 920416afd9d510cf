package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcq-generator/internal/adapter/exporter"
	"mcq-generator/internal/domain"
	"mcq-generator/internal/dto"
	"mcq-generator/internal/logger"
	"mcq-generator/internal/middleware"
	"mcq-generator/internal/service"
	"mcq-generator/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FileTypes reports which upload extensions can be extracted.
type FileTypes interface {
	Supports(name string) bool
	SupportedExtensions() []string
}

// MCQHandler handles question generation and export HTTP requests
type MCQHandler struct {
	generation service.GenerationService
	export     service.ExportService
	fileTypes  FileTypes
	validator  *validation.Validator
	uploadDir  string
}

// NewMCQHandler creates a new MCQHandler instance. An empty uploadDir uses
// the system temp directory.
func NewMCQHandler(
	generation service.GenerationService,
	export service.ExportService,
	fileTypes FileTypes,
	validator *validation.Validator,
	uploadDir string,
) *MCQHandler {
	return &MCQHandler{
		generation: generation,
		export:     export,
		fileTypes:  fileTypes,
		validator:  validator,
		uploadDir:  uploadDir,
	}
}

// Generate godoc
// @Summary Generate MCQs from a document
// @Description Uploads a PDF, DOCX or TXT file and returns generated multiple-choice questions
// @Tags mcq
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Source document"
// @Param num_questions formData int false "Number of questions" default(5)
// @Param difficulty formData string false "easy, medium or hard" default(medium)
// @Param title formData string false "Title for the question set"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /generate [post]
func (h *MCQHandler) Generate(c *fiber.Ctx) error {
	params, ok := c.Locals(middleware.GenerateParamsKey).(validation.GenerateParams)
	if !ok {
		return domain.NewInternalError("generate parameters were not validated", nil)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return domain.NewInvalidInputError("No file part in the request")
	}
	if !h.fileTypes.Supports(fh.Filename) {
		return domain.NewInvalidInputError("Invalid file type. Please upload PDF, DOCX, or TXT files.").
			WithContext("supported", h.fileTypes.SupportedExtensions())
	}

	dir := h.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewInternalError("failed to prepare upload directory", err)
	}
	tmp, err := os.CreateTemp(dir, "upload-*"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err != nil {
		return domain.NewInternalError("failed to store upload", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Get().Warn("Failed to remove uploaded file", zap.String("path", path), zap.Error(rmErr))
		}
	}()
	if err := c.SaveFile(fh, path); err != nil {
		return domain.NewInternalError("failed to store upload", err)
	}

	title := params.Title
	if title == "" {
		title = exporter.TitleFromFileName(fh.Filename)
	}

	result, err := h.generation.GenerateFromFile(c.UserContext(), service.FileInput{
		Path:       path,
		Name:       filepath.Base(fh.Filename),
		Title:      title,
		Count:      params.Count,
		Difficulty: string(params.Difficulty),
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.GenerateResponse{
		Success:  true,
		ID:       result.ID,
		Title:    result.Title,
		MCQs:     result.Questions,
		Count:    len(result.Questions),
		Tier:     string(result.Tier),
		Warnings: result.Warnings,
		Cached:   result.Cached,
	})
}

// Export godoc
// @Summary Export MCQs as PDF
// @Description Renders the posted question set as a downloadable PDF
// @Tags mcq
// @Accept json
// @Produce application/pdf
// @Param request body dto.ExportRequest true "Questions and title"
// @Success 200 {file} binary
// @Failure 400 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /export [post]
func (h *MCQHandler) Export(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body must be JSON with mcqs and title")
	}
	if errs := h.validator.ValidateStruct(req); len(errs) > 0 {
		return errs
	}

	doc, err := h.export.Render(c.UserContext(), req.Title, req.MCQs)
	if err != nil {
		return err
	}
	return sendDocument(c, doc)
}

// ListSets godoc
// @Summary List archived question sets
// @Tags sets
// @Produce json
// @Param limit query int false "Maximum number of sets" default(20)
// @Success 200 {object} dto.SetListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /mcq-sets [get]
func (h *MCQHandler) ListSets(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.ListLimitKey).(int)

	sets, err := h.generation.ListSets(c.UserContext(), limit)
	if err != nil {
		return err
	}

	resp := dto.SetListResponse{Sets: make([]dto.SetSummary, 0, len(sets))}
	for _, s := range sets {
		resp.Sets = append(resp.Sets, dto.NewSetSummary(s))
	}
	resp.Count = len(resp.Sets)
	return c.JSON(resp)
}

// GetSet godoc
// @Summary Get an archived question set
// @Tags sets
// @Produce json
// @Param id path string true "Set ID (ULID)"
// @Success 200 {object} dto.SetDetailResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /mcq-sets/{id} [get]
func (h *MCQHandler) GetSet(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.SetIDKey).(string)

	set, err := h.generation.GetSet(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(dto.SetDetailResponse{
		SetSummary:     dto.NewSetSummary(set),
		RequestedCount: set.RequestedCount,
		Tier:           set.DecodeTier,
		MCQs:           set.Questions,
	})
}

// ExportSet godoc
// @Summary Export an archived question set as PDF
// @Tags sets
// @Produce application/pdf
// @Param id path string true "Set ID (ULID)"
// @Param title query string false "Override the stored title"
// @Success 200 {file} binary
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /mcq-sets/{id}/export [get]
func (h *MCQHandler) ExportSet(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.SetIDKey).(string)

	doc, err := h.export.RenderStored(c.UserContext(), id, c.Query("title"))
	if err != nil {
		return err
	}
	return sendDocument(c, doc)
}

func sendDocument(c *fiber.Ctx, doc *service.Document) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Send(doc.Data)
}

// Register mounts the MCQ routes on router.
func (h *MCQHandler) Register(router fiber.Router, vm *middleware.ValidationMiddleware) {
	router.Post("/generate", vm.ValidateGenerateForm(), h.Generate)
	router.Post("/export", h.Export)
	router.Get("/mcq-sets", vm.ValidateListQuery(), h.ListSets)
	router.Get("/mcq-sets/:id", vm.ValidateSetID(), h.GetSet)
	router.Get("/mcq-sets/:id/export", vm.ValidateSetID(), h.ExportSet)
}
