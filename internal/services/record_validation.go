package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return validate
}

// validateRecord reports failing fields by their JSON names, in declaration
// order, without duplicates.
func validateRecord(record any) error {
	err := recordValidator.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make([]string, 0, len(fieldErrors))
	seen := make(map[string]struct{}, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		name := fieldError.Field()
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	return &ValidationError{Fields: fields}
}
