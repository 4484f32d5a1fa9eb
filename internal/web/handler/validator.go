package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	// ErrorResponse describes one failed struct field.
	ErrorResponse struct {
		FailedField string `json:"field"`
		Tag         string `json:"tag"`
		Param       string `json:"param,omitempty"`
	}

	// ValidationError is returned for a request body that fails its struct tags.
	ValidationError struct {
		Fields []ErrorResponse
	}

	// XValidator wraps a validator instance.
	XValidator struct {
		validator *validator.Validate
	}
)

// ErrInvalidBody is returned for a body that cannot be decoded.
var ErrInvalidBody = fiber.NewError(fiber.StatusBadRequest, "Invalid request body")

// Validator is the shared request validator.
var Validator = NewValidator()

// NewValidator creates a validator reporting json field names.
func NewValidator() *XValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &XValidator{validator: v}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.FailedField+" failed on "+f.Tag)
	}

	return "Validation failed: " + strings.Join(parts, ", ")
}

// Validate checks data against its struct tags.
func (v *XValidator) Validate(data any) error {
	err := v.validator.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := &ValidationError{Fields: make([]ErrorResponse, 0, len(errs))}
	for _, fe := range errs {
		out.Fields = append(out.Fields, ErrorResponse{
			FailedField: fe.Field(),
			Tag:         fe.Tag(),
			Param:       fe.Param(),
		})
	}

	return out
}

// ParseBody decodes the request body into v and validates it.
func ParseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return ErrInvalidBody
	}

	return Validator.Validate(v)
}
