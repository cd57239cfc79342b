package models

import "strings"

// Sentiment is the canonical three-class label. The string values are the
// literals persisted in the distribution contract, so they never change
// independently of the history readers.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVO"
	SentimentNegative Sentiment = "NEGATIVO"
	SentimentNeutral  Sentiment = "NEUTRO"
)

// modelLabelTable maps the raw labels emitted by the underlying classifiers to
// canonical sentiments. BERTimbau-style checkpoints emit LABEL_0..LABEL_2,
// VADER-style backends emit generic english labels. Anything not in the table
// (including LABEL_1) resolves to NEUTRO.
var modelLabelTable = map[string]Sentiment{
	"LABEL_2":  SentimentPositive,
	"POSITIVE": SentimentPositive,
	"LABEL_0":  SentimentNegative,
	"NEGATIVE": SentimentNegative,
}

// SentimentFromModelLabel translates a raw model label into a canonical
// sentiment. Lookup is case-insensitive; unknown labels are NEUTRO.
func SentimentFromModelLabel(raw string) Sentiment {
	if s, ok := modelLabelTable[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return s
	}
	return SentimentNeutral
}

// SentimentResult is the classifier output for a single normalized text.
// Immutable after creation.
type SentimentResult struct {
	Label      Sentiment `json:"sentiment_label"`
	Confidence float64   `json:"confidence"`
}
