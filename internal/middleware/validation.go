package middleware

import (
	"mcq-generator/internal/domain"
	"mcq-generator/internal/dto"
	"mcq-generator/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys for validated request values.
const (
	GenerateParamsKey = "validated_generate_params"
	SetIDKey          = "validated_set_id"
	ListLimitKey      = "validated_limit"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateGenerateForm validates num_questions, difficulty and title form fields.
func (vm *ValidationMiddleware) ValidateGenerateForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, errs := vm.validator.ValidateGenerateParams(
			c.FormValue("num_questions"),
			c.FormValue("difficulty"),
			c.FormValue("title"),
		)
		if len(errs) > 0 {
			return errs
		}
		c.Locals(GenerateParamsKey, params)
		return c.Next()
	}
}

// ValidateSetID validates the :id path parameter.
func (vm *ValidationMiddleware) ValidateSetID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateSetID(id); len(errs) > 0 {
			return errs
		}
		c.Locals(SetIDKey, id)
		return c.Next()
	}
}

// ValidateListQuery validates the limit query parameter.
func (vm *ValidationMiddleware) ValidateListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.ListQuery
		if err := c.QueryParser(&q); err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("limit", c.Query("limit"))}
		}
		if errs := vm.validator.ValidateStruct(q); len(errs) > 0 {
			return errs
		}
		c.Locals(ListLimitKey, q.Limit)
		return c.Next()
	}
}
