package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_FAILED"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Pipeline errors
	CodeExtraction ErrorCode = "EXTRACTION_ERROR"
	CodeTooShort   ErrorCode = "TOO_SHORT"
	CodeGeneration ErrorCode = "GENERATION_ERROR"
	CodeDecode     ErrorCode = "DECODE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a diagnostic key/value to the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

// NewExtractionError reports an unreadable or unsupported source document.
func NewExtractionError(message string, err error) *DomainError {
	return NewError(CodeExtraction, message, err)
}

// NewTooShortError reports a document that parsed fine but holds too little text.
func NewTooShortError(length, minimum int) *DomainError {
	return NewError(CodeTooShort,
		"Document is too short or could not be parsed. Please ensure the document contains sufficient text.", nil).
		WithContext("length", length).
		WithContext("minimum", minimum)
}

// NewGenerationError reports a failed or unusable model call.
func NewGenerationError(message string, err error) *DomainError {
	return NewError(CodeGeneration, message, err)
}

// DecodeError is returned when neither decode tier could read the model
// output. Both causes are kept because they fail for unrelated reasons.
type DecodeError struct {
	StrictErr  error
	LenientErr error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse MCQs: strict decode error: %v; lenient JSON fallback error: %v", e.StrictErr, e.LenientErr)
}

// NewDecodeError wraps both tier failures into a DomainError. The parser
// messages of both tiers are attached as context so callers can diagnose
// the failure without the raw model output.
func NewDecodeError(strictErr, lenientErr error) *DomainError {
	e := NewError(CodeDecode, "Model response could not be parsed into questions",
		&DecodeError{StrictErr: strictErr, LenientErr: lenientErr})
	if strictErr != nil {
		e.WithContext("strict_error", strictErr.Error())
	}
	if lenientErr != nil {
		e.WithContext("lenient_error", lenientErr.Error())
	}
	return e
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors is a list of request field errors.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	if len(v) == 1 {
		return fmt.Sprintf("validation failed: %s %s", v[0].Field, v[0].Message)
	}
	return fmt.Sprintf("validation failed: %s %s (and %d more)", v[0].Field, v[0].Message, len(v)-1)
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) FieldError {
	return FieldError{Field: field, Message: "has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max), Value: value}
}
