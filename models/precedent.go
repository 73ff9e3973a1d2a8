package models

// Precedent represents one FAS decision from the knowledge base.
// Row i of the corpus embedding matrix holds the embedding of row i
// of the precedent dataset.
type Precedent struct {
	DocID            string `json:"docID"`
	CaseID           string `json:"caseID"`
	ViolationSummary string `json:"violation_summary"`
	FASArguments     string `json:"fas_arguments"`
	ThematicTags     string `json:"thematic_tags"`
}

// PrecedentMatch pairs a precedent with its similarity score for one query.
type PrecedentMatch struct {
	Precedent Precedent `json:"precedent"`
	Score     float32   `json:"score"`
}
