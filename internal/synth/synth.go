// Package synth combines the parameter catalog with normalized batch
// records into ordered report tables. Synthesis is a pure function of
// its inputs: identical catalog slices and batch sequences always
// produce identical tables, and no input ever makes it fail.
package synth

import "github.com/reglabs/coaflow/internal/model"

// Footnote is the fixed abbreviations block appended to every table.
const Footnote = "Abbreviations: TBD = to be determined; NMT = not more than; " +
	"NLT = not less than; IR = infrared spectroscopy; HPLC = high-performance " +
	"liquid chromatography; KF = Karl Fischer; CFU = colony-forming units."

// Table synthesizes one report table. Row order follows the parameter
// slice; column order follows the batch sequence. Section-header
// definitions (empty extraction key) become label-only rows with empty
// cells in every column. Missing batch values render as the placeholder
// token. An empty batch sequence yields an empty-body table so
// downstream rendering never sees a nil table.
func Table(title string, params []model.ParameterDefinition, batches []model.NormalizedBatch) model.SynthesizedTable {
	headers := make([]string, len(batches))
	for i, batch := range batches {
		headers[i] = batch.BatchNumber
	}

	rows := make([]model.TableRow, 0, len(params))
	for _, param := range params {
		row := model.TableRow{
			Label:         param.DisplayName,
			Criterion:     param.Criterion,
			Cells:         make([]string, len(batches)),
			SectionHeader: param.SectionHeader(),
		}
		if !row.SectionHeader {
			for i := range batches {
				row.Cells[i] = batches[i].Lookup(param.ExtractionKey)
			}
		}
		rows = append(rows, row)
	}

	return model.SynthesizedTable{
		Title:         title,
		ColumnHeaders: headers,
		Rows:          rows,
		Footnote:      Footnote,
	}
}

// LatestBatch narrows a batch sequence to its final element, for table
// variants that summarize only the most recent batch. The caller is
// responsible for ordering batches so last means most recent; no date
// comparison happens here.
func LatestBatch(batches []model.NormalizedBatch) []model.NormalizedBatch {
	if len(batches) == 0 {
		return nil
	}
	return batches[len(batches)-1:]
}
