package catalog

import "github.com/reglabs/coaflow/internal/model"

// defaultTitles are the report table titles used when no catalog file
// is configured.
var defaultTitles = map[TableID]string{
	TableMain:        "Batch Analysis Results",
	TableContinued:   "Batch Analysis Results (continued)",
	TableLatestBatch: "Representative Batch Summary",
}

// defaultEntries is the built-in parameter catalog. Order is
// significant: it defines row order in every synthesized table.
var defaultEntries = []Entry{
	{
		Definition: model.ParameterDefinition{DisplayName: "Manufacture Date", Criterion: "Report result", ExtractionKey: model.KeyManufactureDate},
		Tables:     []TableID{TableMain, TableLatestBatch},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Manufacturer", Criterion: "Report result", ExtractionKey: model.KeyManufacturer},
		Tables:     []TableID{TableMain, TableLatestBatch},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Batch Size", Criterion: "Report result", ExtractionKey: model.KeyBatchSize},
		Tables:     []TableID{TableMain},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Appearance", Criterion: "White to off-white crystalline powder", ExtractionKey: "appearance"},
		Tables:     []TableID{TableMain, TableLatestBatch},
		Overrides:  map[TableID]string{TableLatestBatch: "White crystalline powder"},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Identification (IR)", Criterion: "Conforms to reference spectrum", ExtractionKey: "identification_ir"},
		Tables:     []TableID{TableMain},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Identification (HPLC)", Criterion: "Retention time conforms to reference", ExtractionKey: "identification_hplc"},
		Tables:     []TableID{TableMain},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Assay (on anhydrous basis)", Criterion: "98.0% - 102.0%", ExtractionKey: "assay"},
		Tables:     []TableID{TableMain, TableLatestBatch},
		Overrides:  map[TableID]string{TableLatestBatch: "98.5% - 101.5%"},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Related Substances", ExtractionKey: ""},
		Tables:     []TableID{TableMain, TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Single Largest Impurity", Criterion: "NMT 0.10%", ExtractionKey: "impurity_single"},
		Tables:     []TableID{TableMain, TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Total Impurities", Criterion: "NMT 0.5%", ExtractionKey: "impurity_total"},
		Tables:     []TableID{TableMain, TableContinued},
		Overrides:  map[TableID]string{TableContinued: "NMT 0.3%"},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Residual Solvents", ExtractionKey: ""},
		Tables:     []TableID{TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Ethanol", Criterion: "NMT 5000 ppm", ExtractionKey: "residual_ethanol"},
		Tables:     []TableID{TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Methanol", Criterion: "NMT 3000 ppm", ExtractionKey: "residual_methanol"},
		Tables:     []TableID{TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Water Content (KF)", Criterion: "NMT 0.5%", ExtractionKey: "water_content"},
		Tables:     []TableID{TableMain, TableContinued, TableLatestBatch},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Heavy Metals", Criterion: "NMT 20 ppm", ExtractionKey: "heavy_metals"},
		Tables:     []TableID{TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Microbial Limits", ExtractionKey: ""},
		Tables:     []TableID{TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Total Aerobic Microbial Count", Criterion: "NMT 1000 CFU/g", ExtractionKey: "microbial_tamc"},
		Tables:     []TableID{TableContinued},
	},
	{
		Definition: model.ParameterDefinition{DisplayName: "Total Yeasts and Molds", Criterion: "NMT 100 CFU/g", ExtractionKey: "microbial_tymc"},
		Tables:     []TableID{TableContinued},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultEntries, defaultTitles)
}
