package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/reglabs/coaflow/internal/confidence"
	"github.com/reglabs/coaflow/internal/model"
	"github.com/reglabs/coaflow/internal/review"
)

// Prompter walks a document's extracted fields interactively, staging
// reviewer corrections into the reconciliation store. Low-confidence
// fields start pre-flagged for review.
type Prompter struct {
	writer io.Writer
	reader *LineReader
}

// NewPrompter creates a prompter over the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// ReviewFields presents each field, staging any non-empty reply as a
// pending edit. Field labels come from the template's display-name
// mapping when one is given; names is nil otherwise. It never saves;
// the caller owns the save/discard decision.
func (p *Prompter) ReviewFields(ctx context.Context, store *review.Store, names map[string]string) error {
	fields := store.Fields()
	if len(fields) == 0 {
		fmt.Fprintln(p.writer, SubtleStyle.Render("No extracted fields to review."))
		return nil
	}

	fmt.Fprintln(p.writer, FormatTitle("Extracted Data"))

	for i, field := range fields {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprintf(p.writer, "\n%s\n", RenderBox(
			fmt.Sprintf("Field %d/%d", i+1, len(fields)),
			p.formatField(field, names)))

		fmt.Fprintln(p.writer, FormatPrompt("New value (Enter keeps current)"))

		value, err := p.reader.ReadLine(ctx)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}

		if err := store.SetField(field.FieldName, value); err != nil {
			return err
		}
		fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf("staged %s = %q", field.FieldName, value)))
	}

	return nil
}

// formatField lays out one field with its tier-styled confidence and,
// for low-tier fields, the review flag.
func (p *Prompter) formatField(field model.ExtractedField, names map[string]string) string {
	tier := confidence.Classify(field.ConfidenceScore)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", fieldLabel(names, field.FieldName), TierStyle(tier).Render(field.FieldValue))
	b.WriteString(FormatConfidence(field.ConfidenceScore))
	if tier.NeedsReview() {
		b.WriteString("  " + ErrorStyle.Render(FlagIcon+" flagged for review"))
	}
	if field.OriginalText != "" {
		b.WriteString("\n" + SubtleStyle.Render(fmt.Sprintf("Original: %q", field.OriginalText)))
	}
	return b.String()
}

// fieldLabel resolves a raw field name to its template display name,
// falling back to the raw name when no mapping covers it.
func fieldLabel(names map[string]string, field string) string {
	if name, ok := names[field]; ok && name != "" {
		return name
	}
	return field
}

// NewSpinner returns an indeterminate progress indicator for a remote
// operation that is awaited to completion.
func NewSpinner(writer io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}
