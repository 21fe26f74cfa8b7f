package model

import (
	"errors"
	"fmt"
	"strings"
)

// Field validation errors.
var (
	ErrMissingFieldID   = errors.New("field id is required")
	ErrMissingFieldName = errors.New("field name is required")
	ErrScoreOutOfRange  = errors.New("confidence score must be between 0.0 and 1.0")
)

// ExtractedField is one reviewer-editable datum extracted from a document.
// The extraction service creates it; it lives for the document session.
type ExtractedField struct {
	ID              string  `json:"id"`
	DocumentID      string  `json:"documentId"`
	FieldName       string  `json:"fieldName"`
	FieldValue      string  `json:"fieldValue"`
	OriginalText    string  `json:"originalText,omitempty"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// Validate checks that the field is well formed.
func (f *ExtractedField) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return ErrMissingFieldID
	}
	if strings.TrimSpace(f.FieldName) == "" {
		return ErrMissingFieldName
	}
	if f.ConfidenceScore < 0.0 || f.ConfidenceScore > 1.0 {
		return fmt.Errorf("%w, got %.2f", ErrScoreOutOfRange, f.ConfidenceScore)
	}
	return nil
}

// TableField is one finalized field/value pair fetched for commit.
type TableField struct {
	Field      string  `json:"field"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}
