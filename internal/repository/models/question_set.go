package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"mcq-generator/internal/domain"
)

// QuestionsJSON stores a question set in a single CLOB column as JSON.
type QuestionsJSON domain.QuestionSet

// Value implements the driver.Valuer interface
func (q QuestionsJSON) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	data, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionsJSON) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*q = QuestionsJSON{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("QuestionsJSON Scan: unsupported type %T", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*q = QuestionsJSON{}
		return nil
	}
	return json.Unmarshal(data, q)
}

// QuestionSet is the question_sets row.
type QuestionSet struct {
	ID             string        `db:"id"`
	Title          string        `db:"title"`
	SourceName     string        `db:"source_name"`
	Difficulty     string        `db:"difficulty"`
	RequestedCount int           `db:"requested_count"`
	QuestionCount  int           `db:"question_count"`
	DecodeTier     string        `db:"decode_tier"`
	Questions      QuestionsJSON `db:"questions"`
	CreatedAt      time.Time     `db:"created_at"`
}
