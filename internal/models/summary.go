package models

import "time"

// AnalysisSummary is the append-only record produced at the end of one
// analysis run. Distribution carries the fixed-format percentage string
// that history readers re-parse; Synthesis is the narrative paragraph.
type AnalysisSummary struct {
	ID           string    `json:"id"`
	Model        string    `json:"model"`
	Synthesis    string    `json:"synthesis"`
	Distribution string    `json:"distribution"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// Distribution holds the per-run sentiment percentages. The three fields
// always sum to 100 within floating rounding; absent buckets are 0.0.
type Distribution struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// TechnicalSummary holds externally curated advantages/disadvantages for a
// vehicle model. Absent data is represented as "N/A", never empty strings.
type TechnicalSummary struct {
	Advantages    string `json:"advantages"`
	Disadvantages string `json:"disadvantages"`
}

// UnknownTechnicalSummary is the default when no curated entry exists.
func UnknownTechnicalSummary() TechnicalSummary {
	return TechnicalSummary{Advantages: "N/A", Disadvantages: "N/A"}
}
