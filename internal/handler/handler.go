// Package handler exposes the HTTP surface: project sessions, action
// dispatch, asset ingestion, generation jobs and export.
package handler

import (
	"github.com/go-playground/validator/v10"
)

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
