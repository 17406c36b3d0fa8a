package services

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// FormErrors maps a form field name to the message shown next to it.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	return "invalid form: " + strings.Join(e.Messages(), "; ")
}

func (e FormErrors) Messages() []string {
	return slices.Sorted(maps.Values(e))
}

func (e FormErrors) Has(field string) bool {
	_, found := e[field]
	return found
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("job_location", func(fl validator.FieldLevel) bool {
		return models.IsValidLocation(fl.Field().String())
	})
	_ = v.RegisterValidation("job_category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(fl.Field().String())
	})

	return v
}

// validateForm checks form against its validate tags. It returns nil or FormErrors.
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	formType := reflect.TypeOf(form)
	if formType.Kind() == reflect.Pointer {
		formType = formType.Elem()
	}

	result := FormErrors{}
	for _, fieldErr := range validationErrors {
		if _, exists := result[fieldErr.Field()]; exists {
			continue
		}
		result[fieldErr.Field()] = messageFor(fieldErr, labelOf(formType, fieldErr.StructField()))
	}
	return result
}

func labelOf(formType reflect.Type, fieldName string) string {
	if field, found := formType.FieldByName(fieldName); found {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
	}
	return fieldName
}

func messageFor(fieldErr validator.FieldError, label string) string {
	switch fieldErr.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fieldErr.Param())
	case "job_location":
		return "Please select a location from the list"
	case "job_category":
		return "Please select a category from the list"
	default:
		return label + " is invalid"
	}
}
