// Package service holds the workflow rules between the HTTP handlers
// and the store: input validation, owner resolution, and the response
// and donation status lifecycles. Handlers never touch repositories
// directly.
package service

import "fmt"

// ValidationError carries per-field messages for inline display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func validationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
