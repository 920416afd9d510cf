package domain

import (
	"fmt"
	"strings"
	"time"
)

// OptionsPerQuestion is the fixed number of options every question carries.
const OptionsPerQuestion = 4

// OptionLabels maps option positions to their display labels.
var OptionLabels = [OptionsPerQuestion]string{"A", "B", "C", "D"}

// Difficulty is the requested difficulty level of a question set.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts user input into a Difficulty. An empty value
// defaults to medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DifficultyMedium, nil
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", NewInvalidInputError(fmt.Sprintf("invalid difficulty %q: must be easy, medium or hard", s))
	}
}

// Option is one answer choice of a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a single multiple-choice question.
type Question struct {
	Question    string   `json:"question"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
}

// Validate checks the four-option / one-correct invariant.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("expected %d options, got %d", OptionsPerQuestion, len(q.Options))
	}
	correct := 0
	for i, opt := range q.Options {
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("option %s has empty text", OptionLabels[i])
		}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("expected exactly 1 correct option, got %d", correct)
	}
	return nil
}

// CorrectIndex returns the position of the correct option, or -1.
func (q Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// QuestionSet is an ordered list of questions.
type QuestionSet []Question

// ValidationWarning reports a decoded question that was dropped because it
// violates the question invariant.
type ValidationWarning struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("question %d dropped: %s", w.Index+1, w.Reason)
}

// ValidateQuestionSet returns the questions that satisfy the invariant, in
// their original order, together with a warning for every dropped one. The
// input is never modified and no question is repaired.
func ValidateQuestionSet(set QuestionSet) (QuestionSet, []ValidationWarning) {
	valid := make(QuestionSet, 0, len(set))
	var warnings []ValidationWarning
	for i, q := range set {
		if err := q.Validate(); err != nil {
			warnings = append(warnings, ValidationWarning{Index: i, Reason: err.Error()})
			continue
		}
		valid = append(valid, q)
	}
	return valid, warnings
}

// GenerationRequest carries the parameters of a single generation call.
type GenerationRequest struct {
	SourceText string
	Count      int
	Difficulty Difficulty
}

// StoredQuestionSet is an archived successful generation result.
type StoredQuestionSet struct {
	ID             string
	Title          string
	SourceName     string
	Difficulty     Difficulty
	RequestedCount int
	Questions      QuestionSet
	DecodeTier     string
	CreatedAt      time.Time
}
