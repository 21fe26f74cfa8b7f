package model

import (
	"errors"
	"testing"
)

func TestExtractedFieldValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   ExtractedField
		wantErr error
	}{
		{
			name:  "valid field",
			field: ExtractedField{ID: "f1", FieldName: "lot_number", FieldValue: "ABC123", ConfidenceScore: 0.92},
		},
		{
			name:  "zero confidence is valid",
			field: ExtractedField{ID: "f1", FieldName: "assay", ConfidenceScore: 0},
		},
		{
			name:    "missing id",
			field:   ExtractedField{FieldName: "lot_number", ConfidenceScore: 0.5},
			wantErr: ErrMissingFieldID,
		},
		{
			name:    "blank name",
			field:   ExtractedField{ID: "f1", FieldName: "   ", ConfidenceScore: 0.5},
			wantErr: ErrMissingFieldName,
		},
		{
			name:    "confidence above one",
			field:   ExtractedField{ID: "f1", FieldName: "assay", ConfidenceScore: 1.01},
			wantErr: ErrScoreOutOfRange,
		},
		{
			name:    "negative confidence",
			field:   ExtractedField{ID: "f1", FieldName: "assay", ConfidenceScore: -0.1},
			wantErr: ErrScoreOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizedBatchLookup(t *testing.T) {
	batch := NormalizedBatch{
		BatchNumber: "LOT-001",
		Values: map[string]string{
			"assay":      "99.2%",
			"appearance": "",
		},
	}

	if got := batch.Lookup("assay"); got != "99.2%" {
		t.Errorf("Lookup(assay) = %q", got)
	}
	if got := batch.Lookup("appearance"); got != Placeholder {
		t.Errorf("Lookup of empty value = %q, want placeholder", got)
	}
	if got := batch.Lookup("water_content"); got != Placeholder {
		t.Errorf("Lookup of missing key = %q, want placeholder", got)
	}
}
