package engine

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/model"
	"github.com/reglabs/coaflow/internal/review"
	"github.com/reglabs/coaflow/internal/service"
)

type mockBackend struct {
	tableData    []model.TableField
	tableDataErr error
	batchRecords []model.BatchRecord
	uploadDoc    *model.COADocument
	processed    []model.ExtractedField

	tableDataCalls int
	uploadCalls    int
}

func (m *mockBackend) Compounds(context.Context) ([]model.Compound, error) {
	return []model.Compound{{ID: "c1", Code: "HX-101"}}, nil
}

func (m *mockBackend) Templates(context.Context, string) ([]model.Template, error) {
	return []model.Template{{ID: "t1", CompoundID: "c1", Region: "US"}}, nil
}

func (m *mockBackend) Upload(_ context.Context, _ io.Reader, _, _, _ string) (*model.COADocument, error) {
	m.uploadCalls++
	return m.uploadDoc, nil
}

func (m *mockBackend) Process(context.Context, string) ([]model.ExtractedField, error) {
	return m.processed, nil
}

func (m *mockBackend) ProcessDirectory(context.Context, string, string) ([]model.BatchRecord, error) {
	return m.batchRecords, nil
}

func (m *mockBackend) TableData(context.Context, string) ([]model.TableField, error) {
	m.tableDataCalls++
	return m.tableData, m.tableDataErr
}

type mockHost struct {
	insertErr   error
	markup      []string
	locations   []service.InsertLocation
	insertCalls int
}

func (m *mockHost) Insert(_ context.Context, markup string, loc service.InsertLocation) error {
	m.insertCalls++
	m.markup = append(m.markup, markup)
	m.locations = append(m.locations, loc)
	return m.insertErr
}

func TestCommitEmptyDocumentID(t *testing.T) {
	be := &mockBackend{}
	h := &mockHost{}
	eng := New(be, h, nil, nil)

	err := eng.Commit(context.Background(), "  ", nil)
	require.Error(t, err)
	assert.Equal(t, common.KindPrecondition, common.KindOf(err))
	assert.Zero(t, be.tableDataCalls, "precondition failure must not reach the backend")
	assert.Zero(t, h.insertCalls)
}

func TestCommitBackendFailureSkipsInsertion(t *testing.T) {
	be := &mockBackend{tableDataErr: common.Server("extraction incomplete", nil)}
	h := &mockHost{}
	eng := New(be, h, nil, nil)

	err := eng.Commit(context.Background(), "d1", nil)
	require.Error(t, err)
	assert.Equal(t, common.KindServer, common.KindOf(err))
	assert.Zero(t, h.insertCalls, "phase two must not run after a phase-one failure")
}

func TestCommitDoesNotRetry(t *testing.T) {
	be := &mockBackend{
		tableDataErr: common.Transport("backend request failed", errors.New("timeout"), true),
	}
	eng := New(be, &mockHost{}, nil, nil)

	err := eng.Commit(context.Background(), "d1", nil)
	require.Error(t, err)
	assert.Equal(t, 1, be.tableDataCalls, "retry policy belongs to the caller")
}

func TestCommitSuccess(t *testing.T) {
	be := &mockBackend{tableData: []model.TableField{
		{Field: "lot_number", Value: "ABC123", Confidence: 0.95},
	}}
	h := &mockHost{}
	eng := New(be, h, nil, nil)

	err := eng.Commit(context.Background(), "d1", nil)
	require.NoError(t, err)
	require.Equal(t, 1, h.insertCalls)
	assert.Contains(t, h.markup[0], "ABC123")
	assert.Equal(t, service.InsertEnd, h.locations[0])
}

func TestCommitInsertsTemplateContent(t *testing.T) {
	be := &mockBackend{tableData: []model.TableField{
		{Field: "lot_number", Value: "ABC123", Confidence: 0.95},
	}}
	h := &mockHost{}
	eng := New(be, h, nil, nil)

	tmpl := &model.Template{
		ID:           "t1",
		Content:      "<h2>Certificate of Analysis</h2>",
		FieldMapping: map[string]string{"lot_number": "Lot Number / 批号"},
	}

	err := eng.Commit(context.Background(), "d1", tmpl)
	require.NoError(t, err)
	require.Equal(t, 2, h.insertCalls)

	// Template content replaces the selection before the fields append.
	assert.Equal(t, "<h2>Certificate of Analysis</h2>", h.markup[0])
	assert.Equal(t, service.InsertReplace, h.locations[0])
	assert.Equal(t, service.InsertEnd, h.locations[1])
	assert.Contains(t, h.markup[1], "Lot Number / 批号")
	assert.NotContains(t, h.markup[1], "lot_number")
}

func TestCommitHostFailureIsHostInsertion(t *testing.T) {
	be := &mockBackend{tableData: []model.TableField{
		{Field: "lot_number", Value: "ABC123", Confidence: 0.95},
	}}
	h := &mockHost{insertErr: common.HostInsertion("document locked", nil)}
	eng := New(be, h, nil, nil)

	err := eng.Commit(context.Background(), "d1", nil)
	require.Error(t, err)
	assert.Equal(t, common.KindHostInsertion, common.KindOf(err))
}

func TestTemplatesRequireCompound(t *testing.T) {
	eng := New(&mockBackend{}, &mockHost{}, nil, nil)

	_, err := eng.Templates(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, common.KindPrecondition, common.KindOf(err))
}

func TestProcessDocumentRequiresSelections(t *testing.T) {
	eng := New(&mockBackend{}, &mockHost{}, nil, nil)

	sess := review.NewSession()
	_, err := eng.ProcessDocument(context.Background(), sess, strings.NewReader("pdf"), "coa.pdf")
	require.Error(t, err)
	assert.Equal(t, common.KindPrecondition, common.KindOf(err))

	sess = sess.WithCompound(model.Compound{ID: "c1"})
	_, err = eng.ProcessDocument(context.Background(), sess, strings.NewReader("pdf"), "coa.pdf")
	require.Error(t, err)
	assert.Equal(t, common.KindPrecondition, common.KindOf(err))
}

func TestProcessDocumentAttachesResult(t *testing.T) {
	be := &mockBackend{
		uploadDoc: &model.COADocument{ID: "d1", CompoundID: "c1", Filename: "coa.pdf", Status: model.DocumentCompleted},
		processed: []model.ExtractedField{
			{ID: "f1", DocumentID: "d1", FieldName: "lot_number", FieldValue: "ABC123", ConfidenceScore: 0.92},
		},
	}
	eng := New(be, &mockHost{}, nil, nil)

	sess := review.NewSession().
		WithCompound(model.Compound{ID: "c1"}).
		WithTemplate(model.Template{ID: "t1"})

	next, err := eng.ProcessDocument(context.Background(), sess, strings.NewReader("pdf"), "coa.pdf")
	require.NoError(t, err)
	require.NotNil(t, next.Document)
	assert.Equal(t, "d1", next.Document.ID)
	require.NotNil(t, next.Store())
	assert.Equal(t, "ABC123", next.Store().Fields()[0].FieldValue)
}

func TestBatchTablesSynthesizesAllThree(t *testing.T) {
	be := &mockBackend{batchRecords: []model.BatchRecord{
		{BatchNumber: "LOT-001", TestResults: map[string]string{"assay": "99.2%"}},
		{BatchNumber: "LOT-002", TestResults: map[string]string{"assay": "99.5%"}},
	}}
	eng := New(be, &mockHost{}, nil, nil)

	tables, err := eng.BatchTables(context.Background(), "c1", "t1")
	require.NoError(t, err)
	require.Len(t, tables, 3)

	assert.Len(t, tables[0].ColumnHeaders, 2)
	assert.Len(t, tables[1].ColumnHeaders, 2)

	// The summary table carries only the final batch of the sequence.
	require.Len(t, tables[2].ColumnHeaders, 1)
	assert.Contains(t, tables[2].ColumnHeaders[0], "LOT-002")
}

func TestBatchTablesRequireSelections(t *testing.T) {
	eng := New(&mockBackend{}, &mockHost{}, nil, nil)

	_, err := eng.BatchTables(context.Background(), "", "t1")
	assert.Equal(t, common.KindPrecondition, common.KindOf(err))

	_, err = eng.BatchTables(context.Background(), "c1", "")
	assert.Equal(t, common.KindPrecondition, common.KindOf(err))
}

func TestSaveFieldsMergesAndPersists(t *testing.T) {
	eng := New(&mockBackend{}, &mockHost{}, nil, nil)

	store := review.NewStore([]model.ExtractedField{
		{ID: "f1", DocumentID: "d1", FieldName: "lot_number", FieldValue: "OLD", ConfidenceScore: 0.95},
	})
	require.NoError(t, store.SetField("lot_number", "ABC123"))

	require.NoError(t, eng.SaveFields(context.Background(), store))
	assert.Equal(t, "ABC123", store.Fields()[0].FieldValue)
	assert.False(t, store.Dirty())
}

func TestInsertTablesRequiresTables(t *testing.T) {
	h := &mockHost{}
	eng := New(&mockBackend{}, h, nil, nil)

	err := eng.InsertTables(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, common.KindPrecondition, common.KindOf(err))
	assert.Zero(t, h.insertCalls)
}
