package models

// AnalysisStatus classifies the outcome of a generative call or of the
// whole analysis pipeline.
type AnalysisStatus string

const (
	StatusSuccess AnalysisStatus = "SUCCESS"
	StatusSafety  AnalysisStatus = "SAFETY"
	StatusError   AnalysisStatus = "ERROR"
)

// Verdict is the final compliance assessment returned to the user.
type Verdict struct {
	Status AnalysisStatus `json:"status"`
	// Text holds the postprocessed assessment (Telegram HTML subset) on
	// success, or the block explanation when Status is StatusSafety.
	Text string `json:"text"`
	// Preprocessed is the normalized creative description produced by the
	// preprocessing step; retrieval ran against its embedding.
	Preprocessed string `json:"preprocessed_text,omitempty"`
	// Model names the generative model that produced the assessment.
	Model string `json:"model"`
}

// Blocked reports whether the creative was refused on safety grounds.
func (v *Verdict) Blocked() bool {
	return v.Status == StatusSafety
}
