package model

import "time"

// ConfidenceLevel qualifies how complete the answers backing a result were
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// EligibilityResult is the per-product outcome of a scoring pass. One result
// per product per session; recomputed results overwrite previous ones.
type EligibilityResult struct {
	ID               string          `json:"id" bson:"_id,omitempty"`
	SessionID        string          `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	ClientID         string          `json:"clientId,omitempty" bson:"clientId,omitempty"`
	ProductID        string          `json:"productId" bson:"productId"`
	Score            int             `json:"score" bson:"score"`
	EstimatedSavings float64         `json:"estimatedSavings" bson:"estimatedSavings"`
	Confidence       ConfidenceLevel `json:"confidenceLevel" bson:"confidenceLevel"`
	Recommendations  []string        `json:"recommendations" bson:"recommendations"`
	ComputedAt       time.Time       `json:"computedAt" bson:"computedAt"`
}

// MigrationResult reports what a session-to-client migration moved.
type MigrationResult struct {
	ClientID          string `json:"clientId"`
	MigratedResponses int    `json:"migratedResponses"`
	MigratedResults   int    `json:"migratedResults"`
}
