package synth

import (
	"reflect"
	"testing"

	"github.com/reglabs/coaflow/internal/model"
	"github.com/reglabs/coaflow/internal/normalize"
)

func scenarioParams() []model.ParameterDefinition {
	return []model.ParameterDefinition{
		{DisplayName: "Impurities", ExtractionKey: ""},
		{DisplayName: "Parameter One", Criterion: "NMT 0.1%", ExtractionKey: "K1"},
		{DisplayName: "Parameter Two", Criterion: "NMT 0.2%", ExtractionKey: "K2"},
	}
}

func scenarioBatches() []model.NormalizedBatch {
	return normalize.Batches([]model.BatchRecord{
		{BatchNumber: "B1", TestResults: map[string]string{"K1": "10"}},
		{BatchNumber: "B2", TestResults: map[string]string{"K2": "20"}},
	})
}

func TestTableSparseBatches(t *testing.T) {
	table := Table("Batch Analysis", scenarioParams(), scenarioBatches())

	if got := table.ColumnHeaders; !reflect.DeepEqual(got, []string{"B1", "B2"}) {
		t.Fatalf("column headers = %v, want [B1 B2]", got)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}

	header := table.Rows[0]
	if !header.SectionHeader {
		t.Error("first row should be a section header")
	}
	if !reflect.DeepEqual(header.Cells, []string{"", ""}) {
		t.Errorf("section header cells = %v, want two empty cells", header.Cells)
	}

	if got := table.Rows[1].Cells; !reflect.DeepEqual(got, []string{"10", model.Placeholder}) {
		t.Errorf("K1 row = %v, want [10 %s]", got, model.Placeholder)
	}
	if got := table.Rows[2].Cells; !reflect.DeepEqual(got, []string{model.Placeholder, "20"}) {
		t.Errorf("K2 row = %v, want [%s 20]", got, model.Placeholder)
	}
}

func TestTableDeterminism(t *testing.T) {
	first := Table("T", scenarioParams(), scenarioBatches())
	second := Table("T", scenarioParams(), scenarioBatches())

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different tables")
	}
}

func TestRowCardinalityInvariance(t *testing.T) {
	params := scenarioParams()

	sizes := [][]model.NormalizedBatch{
		nil,
		scenarioBatches()[:1],
		scenarioBatches(),
		normalize.Batches([]model.BatchRecord{
			{BatchNumber: "A"}, {BatchNumber: "B"}, {BatchNumber: "C"}, {BatchNumber: "D"},
		}),
	}

	for _, batches := range sizes {
		table := Table("T", params, batches)
		if len(table.Rows) != len(params) {
			t.Errorf("with %d batches got %d rows, want %d", len(batches), len(table.Rows), len(params))
		}
		for _, row := range table.Rows {
			if len(row.Cells) != len(batches) {
				t.Errorf("row %q has %d cells, want %d", row.Label, len(row.Cells), len(batches))
			}
		}
	}
}

func TestColumnOrderFollowsInputOrder(t *testing.T) {
	batches := scenarioBatches()
	reversed := []model.NormalizedBatch{batches[1], batches[0]}

	forward := Table("T", scenarioParams(), batches)
	backward := Table("T", scenarioParams(), reversed)

	if !reflect.DeepEqual(backward.ColumnHeaders, []string{"B2", "B1"}) {
		t.Errorf("reordered headers = %v, want [B2 B1]", backward.ColumnHeaders)
	}

	// Reordering input reorders only columns, never rows.
	for i := range forward.Rows {
		if forward.Rows[i].Label != backward.Rows[i].Label {
			t.Fatalf("row %d label changed when batches were reordered", i)
		}
	}
	if got := backward.Rows[1].Cells; !reflect.DeepEqual(got, []string{model.Placeholder, "10"}) {
		t.Errorf("K1 row after reorder = %v, want [%s 10]", got, model.Placeholder)
	}
}

func TestEmptyBatchSequence(t *testing.T) {
	table := Table("T", scenarioParams(), nil)

	if len(table.ColumnHeaders) != 0 {
		t.Errorf("empty input produced %d columns", len(table.ColumnHeaders))
	}
	if len(table.Rows) != 3 {
		t.Errorf("empty input produced %d rows, want full row set", len(table.Rows))
	}
	if table.Footnote == "" {
		t.Error("empty-body table lost its footnote")
	}
}

func TestFootnoteAppended(t *testing.T) {
	table := Table("T", scenarioParams(), scenarioBatches())
	if table.Footnote != Footnote {
		t.Errorf("footnote = %q, want the fixed abbreviations block", table.Footnote)
	}
}

func TestLatestBatch(t *testing.T) {
	batches := scenarioBatches()

	latest := LatestBatch(batches)
	if len(latest) != 1 {
		t.Fatalf("got %d batches, want 1", len(latest))
	}
	if latest[0].BatchNumber != "B2" {
		t.Errorf("latest batch = %q, want the final element of the input", latest[0].BatchNumber)
	}

	if LatestBatch(nil) != nil {
		t.Error("LatestBatch(nil) should be nil")
	}
}
