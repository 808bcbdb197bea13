package exceptions

import (
	"clinic-admin-service/internal/pkg/constvars"
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func FormatAllValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if err == nil || !errors.As(err, &validationErrors) {
		return constvars.ErrClientCannotProcessRequest
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return strings.Join(messages, ", ")
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return formatFieldError(validationErrors[0])
	}
	return constvars.ErrDevInvalidInput
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := strings.ToLower(fieldErr.Field())
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}

	if constvars.TagsWithParams[tag] {
		switch tag {
		case "oneof":
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(fieldErr.Param()), ", "), 1)
		case "eqfield", "gtefield", "required_with":
			customMessage = strings.Replace(customMessage, "%s", toSnakeCase(fieldErr.Param()), 1)
		case "required_if":
			params := strings.Fields(fieldErr.Param())
			for i, param := range params {
				if i == 0 {
					param = toSnakeCase(param)
				}
				customMessage = strings.Replace(customMessage, "%s", param, 1)
			}
		default:
			customMessage = strings.Replace(customMessage, "%s", strings.ToLower(fieldErr.Param()), 1)
		}
	}
	return fieldName + " " + customMessage
}

func toSnakeCase(name string) string {
	var builder strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				builder.WriteByte('_')
			}
			builder.WriteRune(unicode.ToLower(r))
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
