// Package model defines the core domain records used throughout the application.
package model

import "time"

// Compound identifies a drug substance or product the backend knows about.
type Compound struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Template is a regional report template registered for a compound.
type Template struct {
	FieldMapping map[string]string `json:"fieldMapping,omitempty"`
	ID           string            `json:"id"`
	CompoundID   string            `json:"compoundId"`
	Region       string            `json:"region"`
	Content      string            `json:"templateContent"`
}

// DocumentStatus tracks where an uploaded document is in the extraction pipeline.
type DocumentStatus string

// Document processing statuses reported by the backend.
const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

// COADocument represents one uploaded certificate-of-analysis document.
type COADocument struct {
	UploadedAt  time.Time      `json:"uploadedAt"`
	ProcessedAt *time.Time     `json:"processedAt,omitempty"`
	ID          string         `json:"id"`
	CompoundID  string         `json:"compoundId"`
	Filename    string         `json:"filename"`
	Status      DocumentStatus `json:"processingStatus"`
}
