// Package normalize maps raw per-batch extraction records into canonical
// lookups keyed by catalog extraction key. Normalization is total: no
// input, however sparse, produces an error.
package normalize

import (
	"strings"

	"github.com/reglabs/coaflow/internal/model"
)

// manufacturerRule rewrites a long-form manufacturer name to its short
// form when the raw name contains the alias.
type manufacturerRule struct {
	contains string
	short    string
}

// manufacturerRules is an ordered substring-match rule table. The first
// matching rule wins; unmatched names pass through unchanged.
var manufacturerRules = []manufacturerRule{
	{contains: "Pharmaceutical Co., Ltd.", short: "Pharma Co."},
	{contains: "Pharmaceuticals Inc.", short: "Pharma Inc."},
	{contains: "Biotechnology Co., Ltd.", short: "Biotech Co."},
	{contains: "Fine Chemical", short: "Fine Chem"},
	{contains: "Manufacturing Site", short: "Mfg. Site"},
}

// ShortenManufacturer applies the manufacturer-name shortening rules.
func ShortenManufacturer(name string) string {
	trimmed := strings.TrimSpace(name)
	for _, rule := range manufacturerRules {
		if strings.Contains(trimmed, rule.contains) {
			return strings.TrimSpace(strings.Replace(trimmed, rule.contains, rule.short, 1))
		}
	}
	return trimmed
}

// Batch maps one raw batch record into a canonical lookup. Batch
// attributes (manufacture date, manufacturer, batch size) are folded in
// under their own keys; attributes the extraction did not supply resolve
// to the pending placeholder through NormalizedBatch.Lookup, so every
// output table keeps identical row cardinality regardless of what any
// batch carries.
func Batch(raw model.BatchRecord) model.NormalizedBatch {
	values := make(map[string]string, len(raw.TestResults)+3)
	for key, value := range raw.TestResults {
		values[key] = value
	}

	if raw.ManufactureDate != "" {
		values[model.KeyManufactureDate] = raw.ManufactureDate
	}
	if raw.Manufacturer != "" {
		values[model.KeyManufacturer] = ShortenManufacturer(raw.Manufacturer)
	}
	if raw.BatchSize != "" {
		values[model.KeyBatchSize] = raw.BatchSize
	}

	return model.NormalizedBatch{
		BatchNumber: raw.BatchNumber,
		Values:      values,
	}
}

// Batches normalizes a sequence of raw records, preserving input order.
// Batches are independently owned: they are never merged, reordered, or
// deduplicated.
func Batches(raw []model.BatchRecord) []model.NormalizedBatch {
	normalized := make([]model.NormalizedBatch, len(raw))
	for i, record := range raw {
		normalized[i] = Batch(record)
	}
	return normalized
}
