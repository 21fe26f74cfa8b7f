package model

// Placeholder is rendered wherever a batch has no extracted value for a
// requested key. Cells are never emitted blank.
const Placeholder = "TBD"

// Batch attribute keys resolved by the normalizer in addition to the
// raw extraction keys.
const (
	KeyManufactureDate = "manufacture_date"
	KeyManufacturer    = "manufacturer"
	KeyBatchSize       = "batch_size"
)

// BatchRecord is one raw per-batch extraction result from the backend.
// TestResults is sparse; absent keys are not an error.
type BatchRecord struct {
	TestResults     map[string]string `json:"testResults"`
	BatchNumber     string            `json:"batchNumber"`
	ManufactureDate string            `json:"manufactureDate"`
	Manufacturer    string            `json:"manufacturer"`
	BatchSize       string            `json:"batchSize,omitempty"`
}

// NormalizedBatch is a BatchRecord after normalization: one total
// lookup keyed by catalog extraction key, batch attributes folded in.
type NormalizedBatch struct {
	Values      map[string]string
	BatchNumber string
}

// Lookup returns the value for an extraction key, or the placeholder
// when the batch carries no value for it.
func (b *NormalizedBatch) Lookup(key string) string {
	if v, ok := b.Values[key]; ok && v != "" {
		return v
	}
	return Placeholder
}
