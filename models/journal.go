package models

import "time"

// Journal record kinds, stored in the "kind" field of every JSONL line.
const (
	RecordKindAnalysis = "analysis"
	RecordKindFeedback = "feedback"
	RecordKindBlock    = "block"
)

// AnalysisRecord is one usage-journal line describing a completed (or
// failed) analysis request.
type AnalysisRecord struct {
	Kind        string         `json:"kind"`
	RequestID   string         `json:"request_id"`
	UserID      int64          `json:"user_id"`
	Username    string         `json:"username,omitempty"`
	ReceivedAt  time.Time      `json:"received_at"`
	DurationSec float64        `json:"duration_sec"`
	Status      AnalysisStatus `json:"status"`
	Model       string         `json:"model"`
	TotalTokens int32          `json:"total_tokens"`
	TopCases    []string       `json:"top_cases,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// BlockRecord is one usage-journal line marking that a user was blocked
// for repeated safety violations. The analysis line that triggered the
// block is journaled separately with StatusSafety.
type BlockRecord struct {
	Kind        string    `json:"kind"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Consecutive int       `json:"consecutive_violations"`
	Total       int       `json:"total_violations"`
}

// FeedbackRecord is one usage-journal line describing a completed
// feedback survey. Usage and Profile keep the raw callback values
// (usage_yes, profile_lawyer, ...) so the report side owns the wording.
type FeedbackRecord struct {
	Kind      string    `json:"kind"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Rating    int       `json:"rating"`
	Usage     string    `json:"usage"`
	Profile   string    `json:"profile"`
	Comment   string    `json:"comment,omitempty"`
}
