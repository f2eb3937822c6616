package model

import (
	"time"
)

// Contract represents a contract document and its processing state
type Contract struct {
	ID               string             `json:"id"`
	Filename         string             `json:"filename"`
	Tenant           string             `json:"tenant"`
	FileSize         int64              `json:"file_size"`
	ObjectKey        string             `json:"-"`
	Status           string             `json:"status"` // pending, processing, completed, failed
	Progress         int                `json:"progress"`
	Score            int                `json:"score"`
	ExtractedData    *ExtractedData     `json:"extracted_data,omitempty"`
	Gaps             []Gap              `json:"gaps,omitempty"`
	ConfidenceScores map[string]float64 `json:"confidence_scores,omitempty"`
	ErrorMsg         string             `json:"error_msg,omitempty"`
	UploadedAt       time.Time          `json:"uploaded_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	CompletedAt      *time.Time         `json:"completed_at,omitempty"`
}

// ContractStatus constants
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ValidStatus reports whether s is one of the known contract statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Gap describes a critical field judged missing or incomplete after extraction
type Gap struct {
	Field       string `json:"field"`
	Importance  string `json:"importance"` // High, Medium
	Status      string `json:"status"`     // Missing, Incomplete
	Description string `json:"description"`
}

// Gap importance and status constants
const (
	ImportanceHigh   = "High"
	ImportanceMedium = "Medium"

	GapMissing    = "Missing"
	GapIncomplete = "Incomplete"
)
