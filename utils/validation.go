package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/upb/jobly/models"
)

var (
	// validate is the singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names, the names clients send
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// absent and null Nullable fields validate as nil, so "omitempty" skips
	// them. Present values come back as pointers, which keeps "omitempty"
	// from skipping zero values such as "".
	validate.RegisterCustomTypeFunc(nullableValue,
		models.Nullable[string]{},
		models.Nullable[int]{},
		models.Nullable[json.Number]{},
	)

	if err := validate.RegisterValidation("equity", validateEquity); err != nil {
		panic(fmt.Sprintf("register equity validation: %v", err))
	}
}

func nullableValue(field reflect.Value) interface{} {
	if !field.FieldByName("Valid").Bool() {
		return nil
	}
	v := field.FieldByName("Value")
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Interface()
}

// validateEquity accepts a numeric value between 0 and 1 inclusive
func validateEquity(fl validator.FieldLevel) bool {
	var s string
	switch v := fl.Field().Interface().(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	default:
		return false
	}
	f, err := json.Number(s).Float64()
	if err != nil {
		return false
	}
	return f >= 0 && f <= 1
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}

// ValidationError wraps validation errors with structured details
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()

		switch tag {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "email":
			fields[field] = fmt.Sprintf("%s must be a valid email", field)
		case "url":
			fields[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "min":
			if err.Kind() == reflect.String {
				fields[field] = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
			} else {
				fields[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
			}
		case "max":
			if err.Kind() == reflect.String {
				fields[field] = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
			} else {
				fields[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
			}
		case "lowercase":
			fields[field] = fmt.Sprintf("%s must be lowercase", field)
		case "equity":
			fields[field] = fmt.Sprintf("%s must be a number between 0 and 1", field)
		default:
			fields[field] = fmt.Sprintf("%s validation failed on '%s' tag", field, tag)
		}
	}

	return &ValidationError{
		Message: "Validation failed",
		Fields:  fields,
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// GetValidationFields extracts field errors from a ValidationError
func GetValidationFields(err error) map[string]string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}
