// Package host renders presentation markup and hands it to the
// authoring-document host. The host guarantees each insertion call
// either updates the document or leaves it untouched.
package host

import (
	"fmt"
	"html"
	"strings"

	"github.com/reglabs/coaflow/internal/confidence"
	"github.com/reglabs/coaflow/internal/model"
)

// Cell background colors by presentation hint.
var hintColors = map[string]string{
	"green": "#107C10",
	"amber": "#FFA500",
	"red":   "#D13438",
}

// RenderFields builds table markup for finalized field/value pairs,
// each value cell styled by its confidence tier. Every score is
// classified before display; no field renders unclassified. Raw field
// names are mapped through the template's display-name mapping when
// one is provided; unmapped names pass through unchanged.
func RenderFields(fields []model.TableField, names map[string]string) string {
	var b strings.Builder
	b.WriteString("<table>\n")
	b.WriteString("<tr><th>Field</th><th>Value</th></tr>\n")

	for _, f := range fields {
		tier := confidence.Classify(f.Confidence)
		fmt.Fprintf(&b, "<tr><td>%s</td><td style=\"color:%s\">%s</td></tr>\n",
			html.EscapeString(displayName(names, f.Field)),
			hintColors[tier.Hint()],
			html.EscapeString(f.Value))
	}

	b.WriteString("</table>")
	return b.String()
}

func displayName(names map[string]string, field string) string {
	if name, ok := names[field]; ok && name != "" {
		return name
	}
	return field
}

// RenderTable builds markup for a synthesized report table. Section
// header rows keep their empty cells and render the label with
// distinct emphasis.
func RenderTable(t model.SynthesizedTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>%s</h3>\n", html.EscapeString(t.Title))
	b.WriteString("<table>\n")

	b.WriteString("<tr><th>Test Parameter</th><th>Acceptance Criterion</th>")
	for _, header := range t.ColumnHeaders {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(header))
	}
	b.WriteString("</tr>\n")

	for _, row := range t.Rows {
		if row.SectionHeader {
			fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td></td>", html.EscapeString(row.Label))
		} else {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td>",
				html.EscapeString(row.Label), html.EscapeString(row.Criterion))
		}
		for _, cell := range row.Cells {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}

	b.WriteString("</table>\n")
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(t.Footnote))
	return b.String()
}
