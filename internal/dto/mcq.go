package dto

import (
	"time"

	"mcq-generator/internal/domain"
)

// GenerateResponse is returned by POST /api/generate.
// @Description Generated multiple-choice questions
type GenerateResponse struct {
	Success  bool                       `json:"success"`
	ID       string                     `json:"id,omitempty"`
	Title    string                     `json:"title,omitempty"`
	MCQs     domain.QuestionSet         `json:"mcqs"`
	Count    int                        `json:"count"`
	Tier     string                     `json:"tier"`
	Warnings []domain.ValidationWarning `json:"warnings,omitempty"`
	Cached   bool                       `json:"cached"`
}

// ExportRequest is the body of POST /api/export.
// @Description Question set to render as PDF
type ExportRequest struct {
	MCQs  domain.QuestionSet `json:"mcqs"`
	Title string             `json:"title" validate:"max=200"`
}

// SetSummary is one archived question set in a listing.
type SetSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SourceName    string    `json:"source_name"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// SetListResponse is returned by GET /api/mcq-sets.
type SetListResponse struct {
	Sets  []SetSummary `json:"sets"`
	Count int          `json:"count"`
}

// SetDetailResponse is returned by GET /api/mcq-sets/:id.
type SetDetailResponse struct {
	SetSummary
	RequestedCount int                `json:"requested_count"`
	Tier           string             `json:"tier"`
	MCQs           domain.QuestionSet `json:"mcqs"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Model  string            `json:"model"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ListQuery holds query parameters for listing archived sets.
type ListQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// NewSetSummary converts an archived set to its listing form.
func NewSetSummary(s *domain.StoredQuestionSet) SetSummary {
	return SetSummary{
		ID:            s.ID,
		Title:         s.Title,
		SourceName:    s.SourceName,
		Difficulty:    string(s.Difficulty),
		QuestionCount: len(s.Questions),
		CreatedAt:     s.CreatedAt,
	}
}
