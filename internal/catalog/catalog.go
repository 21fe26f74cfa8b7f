// Package catalog holds the fixed, ordered definition of test
// parameters used to lay out report tables. The catalog is defined once
// at process start and never mutated; per-table criterion overrides let
// two tables share an extraction key under different acceptance
// criteria without aliasing the key.
package catalog

import (
	"fmt"

	"github.com/reglabs/coaflow/internal/model"
)

// TableID identifies one of the report's table variants.
type TableID string

// Report tables.
const (
	TableMain        TableID = "main"
	TableContinued   TableID = "continued"
	TableLatestBatch TableID = "latest_batch"
)

// Entry is one catalog parameter together with its table membership and
// any per-table criterion overrides.
type Entry struct {
	Overrides  map[TableID]string        `yaml:"overrides,omitempty"`
	Definition model.ParameterDefinition `yaml:",inline"`
	Tables     []TableID                 `yaml:"tables"`
}

// Catalog is an ordered, read-only parameter catalog.
type Catalog struct {
	titles  map[TableID]string
	entries []Entry
}

// New builds a catalog from ordered entries and per-table titles.
func New(entries []Entry, titles map[TableID]string) *Catalog {
	copied := make([]Entry, len(entries))
	copy(copied, entries)

	t := make(map[TableID]string, len(titles))
	for id, title := range titles {
		t[id] = title
	}

	return &Catalog{entries: copied, titles: t}
}

// Table returns the ordered parameter definitions for one table,
// criterion overrides applied. The slice is freshly allocated so
// callers cannot alias the catalog.
func (c *Catalog) Table(id TableID) []model.ParameterDefinition {
	params := make([]model.ParameterDefinition, 0, len(c.entries))
	for _, entry := range c.entries {
		if !entry.memberOf(id) {
			continue
		}
		def := entry.Definition
		if override, ok := entry.Overrides[id]; ok {
			def.Criterion = override
		}
		params = append(params, def)
	}
	return params
}

// Title returns the display title for a table.
func (c *Catalog) Title(id TableID) string {
	if title, ok := c.titles[id]; ok {
		return title
	}
	return string(id)
}

// Len returns the number of catalog entries across all tables.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func (e *Entry) memberOf(id TableID) bool {
	for _, t := range e.Tables {
		if t == id {
			return true
		}
	}
	return false
}

func (e *Entry) validate(index int) error {
	if e.Definition.DisplayName == "" {
		return fmt.Errorf("catalog entry %d: display name is required", index)
	}
	if len(e.Tables) == 0 {
		return fmt.Errorf("catalog entry %d (%s): at least one table is required", index, e.Definition.DisplayName)
	}
	for id := range e.Overrides {
		if !e.memberOf(id) {
			return fmt.Errorf("catalog entry %d (%s): override for table %q the entry is not a member of", index, e.Definition.DisplayName, id)
		}
	}
	return nil
}
