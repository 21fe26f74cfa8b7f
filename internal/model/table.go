package model

// ParameterDefinition is one row definition from the parameter catalog,
// already resolved for a specific table. An empty ExtractionKey marks a
// section-header row that carries no data of its own.
type ParameterDefinition struct {
	DisplayName   string `yaml:"name"`
	Criterion     string `yaml:"criterion"`
	ExtractionKey string `yaml:"key"`
}

// SectionHeader reports whether this definition is a section-header row.
func (p ParameterDefinition) SectionHeader() bool {
	return p.ExtractionKey == ""
}

// TableRow is one synthesized row: a parameter label, its acceptance
// criterion, and one cell per batch column.
type TableRow struct {
	Label         string
	Criterion     string
	Cells         []string
	SectionHeader bool
}

// SynthesizedTable is a derived report table. It is recomputed on every
// synthesis call and never mutated in place.
type SynthesizedTable struct {
	Title         string
	Footnote      string
	ColumnHeaders []string
	Rows          []TableRow
}
