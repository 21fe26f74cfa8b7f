package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reglabs/coaflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidField    = errors.New("invalid extracted field")
	ErrInvalidDocument = errors.New("invalid document")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDocument validates a document record.
func validateDocument(doc *model.COADocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document", ErrNilParameter)
	}
	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDocument)
	}
	if strings.TrimSpace(doc.Filename) == "" {
		return fmt.Errorf("%w: missing filename", ErrInvalidDocument)
	}
	return nil
}

// validateFields validates a slice of extracted fields.
func validateFields(fields []model.ExtractedField) error {
	if fields == nil {
		return fmt.Errorf("%w: fields", ErrNilParameter)
	}
	for i := range fields {
		if err := fields[i].Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %v", ErrInvalidField, i, err)
		}
	}
	return nil
}
