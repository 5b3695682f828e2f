package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/utils"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// New builds a validator that reports json field names and knows the
// domain enumerations. It panics if a rule fails to register.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerRules(v); err != nil {
		panic("failed to register validation rules: " + err.Error())
	}

	return &Validator{validate: v}
}

func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"request_status": func(fl validator.FieldLevel) bool {
			return RequestStatus(fl.Field().String()).Valid()
		},
		"request_type": func(fl validator.FieldLevel) bool {
			return RequestType(fl.Field().String()).Valid()
		},
		"role": func(fl validator.FieldLevel) bool {
			return Role(fl.Field().String()).Valid()
		},
		"department": func(fl validator.FieldLevel) bool {
			return Department(fl.Field().String()).Valid()
		},
		"date": isDate,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// isDate accepts YYYY-MM-DD. An empty string clears the date and is valid.
func isDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := utils.ParseDate(value)
	return err == nil
}

// Struct validates input and reports the first failing field as a
// validation error.
func (v *Validator) Struct(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperrors.Validation("invalid input")
	}

	fe := fieldErrors[0]
	return apperrors.FieldValidation(fe.Field(), "%s: %s", fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value is at least %s", fe.Param())
	case "email":
		return "enter a valid email address"
	case "url":
		return "enter a valid URL"
	case "date":
		return "date has wrong format, use YYYY-MM-DD"
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "request_status":
		return fmt.Sprintf("%q is not a valid status", fmt.Sprint(fe.Value()))
	case "request_type":
		return fmt.Sprintf("%q is not a valid request type", fmt.Sprint(fe.Value()))
	case "role":
		return fmt.Sprintf("%q is not a valid role", fmt.Sprint(fe.Value()))
	case "department":
		return fmt.Sprintf("%q is not a valid department", fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("failed on %s", fe.Tag())
}
