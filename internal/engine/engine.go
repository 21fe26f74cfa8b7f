// Package engine orchestrates the reviewer workflow: document
// processing, batch table synthesis, and the two-phase commit into the
// authoring document.
package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/reglabs/coaflow/internal/catalog"
	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/host"
	"github.com/reglabs/coaflow/internal/model"
	"github.com/reglabs/coaflow/internal/normalize"
	"github.com/reglabs/coaflow/internal/review"
	"github.com/reglabs/coaflow/internal/service"
	"github.com/reglabs/coaflow/internal/synth"
)

// Engine wires the extraction backend, the document host, and the local
// store together. All operations run sequentially; every remote call is
// awaited before the next dependent step starts.
type Engine struct {
	backend service.Backend
	host    service.Host
	storage service.Storage
	catalog *catalog.Catalog
}

// New creates an engine with the given collaborators.
func New(backend service.Backend, docHost service.Host, store service.Storage, cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{
		backend: backend,
		host:    docHost,
		storage: store,
		catalog: cat,
	}
}

// Catalog returns the parameter catalog the engine synthesizes with.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Compounds lists the compounds the backend knows about.
func (e *Engine) Compounds(ctx context.Context) ([]model.Compound, error) {
	return e.backend.Compounds(ctx)
}

// Templates lists the report templates registered for a compound.
func (e *Engine) Templates(ctx context.Context, compoundID string) ([]model.Template, error) {
	if strings.TrimSpace(compoundID) == "" {
		return nil, common.Precondition("compound is required")
	}
	return e.backend.Templates(ctx, compoundID)
}

// Fields returns the persisted canonical field set for a document.
func (e *Engine) Fields(ctx context.Context, documentID string) ([]model.ExtractedField, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, common.Precondition("document id is required")
	}
	if e.storage == nil {
		return nil, common.Precondition("no local store configured")
	}
	return e.storage.GetExtractedFields(ctx, documentID)
}

// ProcessDocument uploads and processes one document for the session's
// selections, persists the canonical field set, and attaches the result
// to the session. Results carrying a stale request token are discarded,
// not merged.
func (e *Engine) ProcessDocument(ctx context.Context, sess review.Session, file io.Reader, filename string) (review.Session, error) {
	if sess.Compound == nil {
		return sess, common.Precondition("select a compound before uploading a document")
	}
	if sess.Template == nil {
		return sess, common.Precondition("select a template before uploading a document")
	}

	token := sess.Token()

	doc, err := e.backend.Upload(ctx, file, filename, sess.Compound.ID, sess.Template.ID)
	if err != nil {
		return sess, err
	}

	slog.Info("document uploaded", "document_id", doc.ID, "filename", doc.Filename)

	fields, err := e.backend.Process(ctx, doc.ID)
	if err != nil {
		return sess, err
	}

	if e.storage != nil {
		if err := e.storage.SaveDocument(ctx, doc); err != nil {
			return sess, err
		}
		if err := e.storage.SaveExtractedFields(ctx, doc.ID, fields); err != nil {
			return sess, err
		}
	}

	next, applied := sess.ApplyDocument(token, *doc, fields)
	if !applied {
		slog.Debug("discarding stale processing result", "document_id", doc.ID, "token", token)
		return sess, nil
	}

	slog.Info("document processed", "document_id", doc.ID, "fields", len(fields))
	return next, nil
}

// BatchTables fetches batch records for a compound and template and
// synthesizes the full table set: the main table, its continuation, and
// the latest-batch summary. Batch order is preserved as received; the
// summary takes the final batch of the sequence.
func (e *Engine) BatchTables(ctx context.Context, compoundID, templateID string) ([]model.SynthesizedTable, error) {
	if strings.TrimSpace(compoundID) == "" {
		return nil, common.Precondition("compound is required")
	}
	if strings.TrimSpace(templateID) == "" {
		return nil, common.Precondition("template is required")
	}

	records, err := e.backend.ProcessDirectory(ctx, compoundID, templateID)
	if err != nil {
		return nil, err
	}

	batches := normalize.Batches(records)

	tables := []model.SynthesizedTable{
		synth.Table(e.catalog.Title(catalog.TableMain), e.catalog.Table(catalog.TableMain), batches),
		synth.Table(e.catalog.Title(catalog.TableContinued), e.catalog.Table(catalog.TableContinued), batches),
		synth.Table(e.catalog.Title(catalog.TableLatestBatch), e.catalog.Table(catalog.TableLatestBatch), synth.LatestBatch(batches)),
	}

	slog.Info("synthesized batch tables", "batches", len(batches), "tables", len(tables))
	return tables, nil
}

// SaveFields merges pending reviewer edits into the canonical field set
// and persists the merge. A save with no pending edits is a no-op.
func (e *Engine) SaveFields(ctx context.Context, store *review.Store) error {
	if store == nil {
		return common.Precondition("no document fields to save")
	}
	if e.storage == nil {
		return store.Save(ctx, nil)
	}
	return store.Save(ctx, e.storage.ApplyFieldMerge)
}

// Commit runs the two-phase commit for a completed document: fetch the
// finalized table data, then render and insert it into the authoring
// document. When a template is given, its content replaces the current
// selection before the field table is appended, and its field mapping
// supplies the display names. The engine never retries; callers wrap
// Commit in common.WithRetry when transient transport failures should
// be retried. The phases are not transactional; a phase-two failure
// leaves the document and the canonical data untouched, per the host's
// own all-or-nothing contract.
func (e *Engine) Commit(ctx context.Context, documentID string, tmpl *model.Template) error {
	if strings.TrimSpace(documentID) == "" {
		return common.Precondition("document id is required")
	}

	fields, err := e.backend.TableData(ctx, documentID)
	if err != nil {
		return err
	}

	var names map[string]string
	if tmpl != nil {
		names = tmpl.FieldMapping
		if tmpl.Content != "" {
			if err := e.host.Insert(ctx, tmpl.Content, service.InsertReplace); err != nil {
				return err
			}
		}
	}

	markup := host.RenderFields(fields, names)
	if err := e.host.Insert(ctx, markup, service.InsertEnd); err != nil {
		return err
	}

	slog.Info("committed table data to document", "document_id", documentID, "fields", len(fields))
	return nil
}

// InsertTables renders synthesized tables and places them in the
// authoring document at the end of the current selection.
func (e *Engine) InsertTables(ctx context.Context, tables []model.SynthesizedTable) error {
	if len(tables) == 0 {
		return common.Precondition("no tables to insert")
	}

	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = host.RenderTable(t)
	}

	return e.host.Insert(ctx, strings.Join(parts, "\n"), service.InsertEnd)
}
