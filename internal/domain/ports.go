package domain

import (
	"context"
	"io"
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	// Extract dispatches on the file extension of path. Unsupported or
	// unreadable files fail with an EXTRACTION_ERROR.
	Extract(ctx context.Context, path string) (string, error)
	SupportedExtensions() []string
}

// Prompt is the two-part instruction sent to the model. System holds the
// instructions and output schema, User holds the task and source text.
type Prompt struct {
	System string
	User   string
}

// Generator sends a prompt to a language model and returns its raw text.
// It knows nothing about the question schema.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	// ModelName identifies the backing model, used to scope cached results.
	ModelName() string
}

// Exporter renders a validated question set into a document.
type Exporter interface {
	Write(w io.Writer, set QuestionSet, title string) error
	Export(set QuestionSet, title string) (string, error)
}

// QuestionSetRepository archives successful generation results.
type QuestionSetRepository interface {
	Save(ctx context.Context, set *StoredQuestionSet) error
	// GetByID returns nil, nil when the set does not exist.
	GetByID(ctx context.Context, id string) (*StoredQuestionSet, error)
	ListRecent(ctx context.Context, limit int) ([]*StoredQuestionSet, error)
}
