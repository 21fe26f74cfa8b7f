package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/model"
)

// SaveDocument inserts or updates a document record.
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *model.COADocument) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(doc); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, compound_id, filename, status, uploaded_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			processed_at = excluded.processed_at
	`, doc.ID, doc.CompoundID, doc.Filename, string(doc.Status), doc.UploadedAt, doc.ProcessedAt)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// GetDocument retrieves a document by id.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*model.COADocument, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var doc model.COADocument
	var status string
	var processedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT id, compound_id, filename, status, uploaded_at, processed_at
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.CompoundID, &doc.Filename, &status, &doc.UploadedAt, &processedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc.Status = model.DocumentStatus(status)
	if processedAt.Valid {
		doc.ProcessedAt = &processedAt.Time
	}

	return &doc, nil
}
