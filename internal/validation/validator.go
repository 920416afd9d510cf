package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"mcq-generator/internal/domain"
	"mcq-generator/internal/util"

	"github.com/go-playground/validator/v10"
)

// GenerateParams are the validated form fields of a generation request.
type GenerateParams struct {
	Count      int
	Difficulty domain.Difficulty
	Title      string
}

// Validator provides request validation functionality
type Validator struct {
	validate     *validator.Validate
	maxQuestions int
}

// NewValidator creates a new validator instance
func NewValidator(maxQuestions int) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{validate: v, maxQuestions: maxQuestions}
}

// ValidateGenerateParams checks num_questions, difficulty and title form
// values. An empty num_questions leaves Count at zero so the service default
// applies.
func (v *Validator) ValidateGenerateParams(numQuestions, difficulty, title string) (GenerateParams, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	var params GenerateParams

	if s := strings.TrimSpace(numQuestions); s != "" {
		n, err := strconv.Atoi(s)
		switch {
		case err != nil:
			errs = append(errs, domain.NewInvalidFormatError("num_questions", numQuestions))
		case n < 1 || (v.maxQuestions > 0 && n > v.maxQuestions):
			errs = append(errs, domain.NewOutOfRangeError("num_questions", n, 1, v.maxQuestions))
		default:
			params.Count = n
		}
	}

	d, err := domain.ParseDifficulty(difficulty)
	if err != nil {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", difficulty))
	}
	params.Difficulty = d

	params.Title = strings.TrimSpace(title)
	if len(params.Title) > 200 {
		errs = append(errs, domain.NewOutOfRangeError("title", len(params.Title), 0, 200))
	}

	return params, errs
}

// ValidateSetID validates an archived set identifier.
func (v *Validator) ValidateSetID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !util.IsULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}
	return nil
}

// ValidateStruct runs the struct's validate tags and converts failures.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: "body", Message: err.Error()}}
	}
	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.FieldError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
			Value:   fe.Value(),
		})
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func jsonFieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "query", "form"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}
