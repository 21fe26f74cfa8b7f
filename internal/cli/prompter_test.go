package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglabs/coaflow/internal/model"
	"github.com/reglabs/coaflow/internal/review"
)

func reviewStore() *review.Store {
	return review.NewStore([]model.ExtractedField{
		{ID: "f1", DocumentID: "d1", FieldName: "lot_number", FieldValue: "ABC123", ConfidenceScore: 0.95},
		{ID: "f2", DocumentID: "d1", FieldName: "appearance", FieldValue: "White powder", ConfidenceScore: 0.45},
	})
}

func TestReviewFieldsStagesReplies(t *testing.T) {
	store := reviewStore()
	var out bytes.Buffer

	// Keep the first field, correct the second.
	prompter := NewPrompter(strings.NewReader("\nOff-white powder\n"), &out)
	err := prompter.ReviewFields(context.Background(), store, nil)
	require.NoError(t, err)

	assert.True(t, store.Dirty())
	require.NoError(t, store.Save(context.Background(), nil))

	fields := store.Fields()
	assert.Equal(t, "ABC123", fields[0].FieldValue)
	assert.Equal(t, "Off-white powder", fields[1].FieldValue)
}

func TestReviewFieldsFlagsLowConfidence(t *testing.T) {
	store := reviewStore()
	var out bytes.Buffer

	prompter := NewPrompter(strings.NewReader("\n\n"), &out)
	require.NoError(t, prompter.ReviewFields(context.Background(), store, nil))

	assert.Contains(t, out.String(), "flagged for review")
	assert.False(t, store.Dirty(), "empty replies stage nothing")
}

func TestReviewFieldsUsesDisplayNames(t *testing.T) {
	store := reviewStore()
	var out bytes.Buffer

	names := map[string]string{"lot_number": "Lot Number / 批号"}
	prompter := NewPrompter(strings.NewReader("\n\n"), &out)
	require.NoError(t, prompter.ReviewFields(context.Background(), store, names))

	assert.Contains(t, out.String(), "Lot Number / 批号")
	// Unmapped fields keep their raw name.
	assert.Contains(t, out.String(), "appearance")
}

func TestReviewFieldsEmptyStore(t *testing.T) {
	store := review.NewStore(nil)
	var out bytes.Buffer

	prompter := NewPrompter(strings.NewReader(""), &out)
	require.NoError(t, prompter.ReviewFields(context.Background(), store, nil))
	assert.Contains(t, out.String(), "No extracted fields")
}

func TestReviewFieldsCancelled(t *testing.T) {
	store := reviewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prompter := NewPrompter(strings.NewReader("x\n"), &bytes.Buffer{})
	err := prompter.ReviewFields(ctx, store, nil)
	require.Error(t, err)
}

func TestLineReaderTrims(t *testing.T) {
	reader := NewLineReader(strings.NewReader("  value  \n"))
	got, err := reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestLineReaderEOF(t *testing.T) {
	reader := NewLineReader(strings.NewReader("last"))
	got, err := reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "last", got)
}
