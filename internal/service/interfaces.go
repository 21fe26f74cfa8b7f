// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"io"
	"time"

	"github.com/reglabs/coaflow/internal/model"
)

// InsertLocation tells the document host where to place markup relative
// to the current selection.
type InsertLocation string

// Insertion locations supported by the document host.
const (
	InsertReplace InsertLocation = "replace"
	InsertAfter   InsertLocation = "after"
	InsertEnd     InsertLocation = "end"
)

// Backend is the extraction/analysis service consumed over HTTP. Every
// method returns classified errors per the application taxonomy.
type Backend interface {
	Compounds(ctx context.Context) ([]model.Compound, error)
	Templates(ctx context.Context, compoundID string) ([]model.Template, error)
	Upload(ctx context.Context, file io.Reader, filename, compoundID, templateID string) (*model.COADocument, error)
	Process(ctx context.Context, documentID string) ([]model.ExtractedField, error)
	ProcessDirectory(ctx context.Context, compoundID, templateID string) ([]model.BatchRecord, error)
	TableData(ctx context.Context, documentID string) ([]model.TableField, error)
}

// Host is the authoring-document host. Insertion is all-or-nothing per
// call: the document is either updated or left untouched.
type Host interface {
	Insert(ctx context.Context, markup string, loc InsertLocation) error
}

// Storage defines the contract for the local document-session store.
type Storage interface {
	SaveDocument(ctx context.Context, doc *model.COADocument) error
	GetDocument(ctx context.Context, id string) (*model.COADocument, error)
	SaveExtractedFields(ctx context.Context, documentID string, fields []model.ExtractedField) error
	GetExtractedFields(ctx context.Context, documentID string) ([]model.ExtractedField, error)
	ApplyFieldMerge(ctx context.Context, changed []model.ExtractedField) error
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
