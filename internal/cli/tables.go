package cli

import (
	"fmt"
	"strings"

	"github.com/reglabs/coaflow/internal/model"
)

// RenderSynthesizedTable lays out a synthesized report table for the
// terminal. Section-header rows keep their empty cells so every table
// variant shows identical column structure.
func RenderSynthesizedTable(t model.SynthesizedTable) string {
	labelWidth := len("Test Parameter")
	criterionWidth := len("Acceptance Criterion")
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Criterion) > criterionWidth {
			criterionWidth = len(row.Criterion)
		}
	}

	columnWidths := make([]int, len(t.ColumnHeaders))
	for i, header := range t.ColumnHeaders {
		columnWidths[i] = len(header)
		for _, row := range t.Rows {
			if len(row.Cells[i]) > columnWidths[i] {
				columnWidths[i] = len(row.Cells[i])
			}
		}
	}

	var b strings.Builder
	b.WriteString(FormatTitle(t.Title))
	b.WriteString("\n")

	header := fmt.Sprintf("%-*s  %-*s", labelWidth, "Test Parameter", criterionWidth, "Acceptance Criterion")
	for i, h := range t.ColumnHeaders {
		header += fmt.Sprintf("  %-*s", columnWidths[i], h)
	}
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, row := range t.Rows {
		line := fmt.Sprintf("%-*s  %-*s", labelWidth, row.Label, criterionWidth, row.Criterion)
		for i, cell := range row.Cells {
			line += fmt.Sprintf("  %-*s", columnWidths[i], cell)
		}
		if row.SectionHeader {
			line = SectionRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(SubtleStyle.Render(t.Footnote))
	b.WriteString("\n")
	return b.String()
}
