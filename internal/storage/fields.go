package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/model"
)

// SaveExtractedFields replaces the canonical field set for a document.
func (s *SQLiteStorage) SaveExtractedFields(ctx context.Context, documentID string, fields []model.ExtractedField) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(documentID, "documentID"); err != nil {
		return err
	}
	if err := validateFields(fields); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM extracted_fields WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("failed to clear previous fields: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO extracted_fields (id, document_id, field_name, field_value, confidence, original_text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, f := range fields {
		if _, err := stmt.ExecContext(ctx,
			f.ID, documentID, f.FieldName, f.FieldValue, f.ConfidenceScore, f.OriginalText); err != nil {
			return fmt.Errorf("failed to insert field %s: %w", f.FieldName, err)
		}
	}

	return tx.Commit()
}

// GetExtractedFields returns the canonical field set for a document in
// insertion order.
func (s *SQLiteStorage) GetExtractedFields(ctx context.Context, documentID string) ([]model.ExtractedField, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(documentID, "documentID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, field_name, field_value, confidence, original_text
		FROM extracted_fields WHERE document_id = ? ORDER BY rowid
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fields []model.ExtractedField
	for rows.Next() {
		var f model.ExtractedField
		var original sql.NullString
		if err := rows.Scan(&f.ID, &f.DocumentID, &f.FieldName, &f.FieldValue, &f.ConfidenceScore, &original); err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		if original.Valid {
			f.OriginalText = original.String
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fields: %w", err)
	}

	return fields, nil
}

// ApplyFieldMerge persists reviewer-merged values. Each change updates
// only the field value, keyed by the field's id, and records a revision
// row for auditing. The whole merge applies atomically.
func (s *SQLiteStorage) ApplyFieldMerge(ctx context.Context, changed []model.ExtractedField) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}
	if err := validateFields(changed); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range changed {
		var oldValue string
		err := tx.QueryRowContext(ctx, `SELECT field_value FROM extracted_fields WHERE id = ?`, f.ID).Scan(&oldValue)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("field %s: %w", f.ID, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read field %s: %w", f.ID, err)
		}

		if oldValue == f.FieldValue {
			continue
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE extracted_fields SET field_value = ? WHERE id = ?`, f.FieldValue, f.ID); err != nil {
			return fmt.Errorf("failed to update field %s: %w", f.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO field_revisions (field_id, old_value, new_value) VALUES (?, ?, ?)`,
			f.ID, oldValue, f.FieldValue); err != nil {
			return fmt.Errorf("failed to record revision for field %s: %w", f.ID, err)
		}
	}

	return tx.Commit()
}
