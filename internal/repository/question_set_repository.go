package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mcq-generator/internal/domain"
	"mcq-generator/internal/repository/models"
	"mcq-generator/internal/util"
)

const questionSetColumns = `id "id",
		title "title",
		source_name "source_name",
		difficulty "difficulty",
		requested_count "requested_count",
		question_count "question_count",
		decode_tier "decode_tier",
		questions "questions",
		created_at "created_at"`

// QuestionSetDatabaseAdapter implements domain.QuestionSetRepository over a
// *sqlx.DB or *sqlx.Tx.
type QuestionSetDatabaseAdapter struct {
	db DBTX
}

func NewQuestionSetDatabaseAdapter(db DBTX) *QuestionSetDatabaseAdapter {
	return &QuestionSetDatabaseAdapter{db: db}
}

// Save assigns an ID and creation time when they are unset.
func (a *QuestionSetDatabaseAdapter) Save(ctx context.Context, set *domain.StoredQuestionSet) error {
	if set == nil {
		return fmt.Errorf("cannot save nil question set")
	}
	if set.ID == "" {
		set.ID = util.NewULID()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}
	row := toModelQuestionSet(set)

	query := `INSERT INTO question_sets (
		id, title, source_name, difficulty, requested_count,
		question_count, decode_tier, questions, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := a.db.ExecContext(ctx, query,
		row.ID,
		row.Title,
		row.SourceName,
		row.Difficulty,
		row.RequestedCount,
		row.QuestionCount,
		row.DecodeTier,
		row.Questions,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question set %s: %w", row.ID, err)
	}
	return nil
}

func (a *QuestionSetDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.StoredQuestionSet, error) {
	var row models.QuestionSet
	query := `SELECT ` + questionSetColumns + `
	FROM question_sets
	WHERE id = :1`

	if err := a.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question set %s: %w", id, err)
	}
	return toDomainQuestionSet(&row), nil
}

// ListRecent returns the newest sets first.
func (a *QuestionSetDatabaseAdapter) ListRecent(ctx context.Context, limit int) ([]*domain.StoredQuestionSet, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.QuestionSet
	query := `SELECT ` + questionSetColumns + `
	FROM question_sets
	ORDER BY created_at DESC
	FETCH FIRST :1 ROWS ONLY`

	if err := a.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list question sets: %w", err)
	}

	sets := make([]*domain.StoredQuestionSet, len(rows))
	for i := range rows {
		sets[i] = toDomainQuestionSet(&rows[i])
	}
	return sets, nil
}

func toModelQuestionSet(set *domain.StoredQuestionSet) *models.QuestionSet {
	return &models.QuestionSet{
		ID:             set.ID,
		Title:          set.Title,
		SourceName:     set.SourceName,
		Difficulty:     string(set.Difficulty),
		RequestedCount: set.RequestedCount,
		QuestionCount:  len(set.Questions),
		DecodeTier:     set.DecodeTier,
		Questions:      models.QuestionsJSON(set.Questions),
		CreatedAt:      set.CreatedAt,
	}
}

func toDomainQuestionSet(row *models.QuestionSet) *domain.StoredQuestionSet {
	return &domain.StoredQuestionSet{
		ID:             row.ID,
		Title:          row.Title,
		SourceName:     row.SourceName,
		Difficulty:     domain.Difficulty(row.Difficulty),
		RequestedCount: row.RequestedCount,
		Questions:      domain.QuestionSet(row.Questions),
		DecodeTier:     row.DecodeTier,
		CreatedAt:      row.CreatedAt,
	}
}

var _ domain.QuestionSetRepository = (*QuestionSetDatabaseAdapter)(nil)
