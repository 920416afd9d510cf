// Package decoder turns raw model output into a typed question set.
//
// Decoding is attempted in two tiers and the first success wins:
//
//  1. Strict: the whole response must be a JSON object matching the question
//     schema, with every field present and correctly typed.
//  2. Lenient: the JSON body is pulled out of markdown fences or surrounding
//     prose and read field by field. Option cardinality and correctness are
//     NOT checked here; callers must run domain.ValidateQuestionSet on the
//     result before trusting it.
//
// When both tiers fail the returned error carries both causes.
package decoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"mcq-generator/internal/domain"

	"github.com/go-playground/validator/v10"
)

// CollectionField is the top-level JSON field holding the questions.
const CollectionField = "mcqs"

// Tier identifies which decoding strategy produced a result.
type Tier string

const (
	TierStrict  Tier = "strict"
	TierLenient Tier = "lenient"
)

// Result is a successful decode. Questions from TierLenient have not been
// checked against the question invariant.
type Result struct {
	Questions domain.QuestionSet
	Tier      Tier
}

type strictOption struct {
	Text      *string `json:"text" validate:"required"`
	IsCorrect *bool   `json:"is_correct" validate:"required"`
}

type strictQuestion struct {
	Question    *string        `json:"question" validate:"required"`
	Options     []strictOption `json:"options" validate:"required,dive"`
	Explanation *string        `json:"explanation" validate:"required"`
}

type strictQuestionList struct {
	MCQs []strictQuestion `json:"mcqs" validate:"required,dive"`
}

// Decoder is safe for concurrent use.
type Decoder struct {
	validate *validator.Validate
}

// New creates a Decoder.
func New() *Decoder {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Decoder{validate: v}
}

// Decode runs the strict tier and falls back to the lenient tier. On failure
// the error is a domain DECODE_ERROR wrapping a *domain.DecodeError.
func (d *Decoder) Decode(raw string) (Result, error) {
	questions, strictErr := d.decodeStrict(raw)
	if strictErr == nil {
		return Result{Questions: questions, Tier: TierStrict}, nil
	}

	questions, lenientErr := decodeLenient(raw)
	if lenientErr == nil {
		return Result{Questions: questions, Tier: TierLenient}, nil
	}

	return Result{}, domain.NewDecodeError(strictErr, lenientErr)
}

func (d *Decoder) decodeStrict(raw string) (domain.QuestionSet, error) {
	var list strictQuestionList
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &list); err != nil {
		return nil, err
	}
	if err := d.validate.Struct(list); err != nil {
		return nil, describeValidation(err)
	}

	set := make(domain.QuestionSet, 0, len(list.MCQs))
	for _, q := range list.MCQs {
		options := make([]domain.Option, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, domain.Option{Text: *opt.Text, IsCorrect: *opt.IsCorrect})
		}
		set = append(set, domain.Question{
			Question:    *q.Question,
			Options:     options,
			Explanation: *q.Explanation,
		})
	}
	return set, nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		missing = append(missing, path)
	}
	return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
}

// FormatInstructions describes the expected output schema to the model.
func FormatInstructions() string {
	return formatInstructions
}

const formatInstructions = `Return a single JSON object that conforms to the schema below and nothing else.

{
  "mcqs": [
    {
      "question": "<string: the question text>",
      "options": [
        {"text": "<string: option text>", "is_correct": <boolean>}
      ],
      "explanation": "<string: brief explanation of the correct answer>"
    }
  ]
}

Constraints:
- "mcqs" is an array with one object per question.
- Every question has exactly 4 options, listed in display order A, B, C, D.
- Exactly one option per question has "is_correct": true; the other three are false.
- Every field is required. "explanation" may be an empty string but must be present.`
