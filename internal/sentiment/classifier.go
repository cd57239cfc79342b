package sentiment

import (
	"log/slog"
	"strings"

	"github.com/hcalazans/autovoz/internal/models"
)

// minTokens is the smallest input the underlying model sees. Anything
// shorter is unreliable and resolves to NEUTRO without an inference call.
const minTokens = 3

// neutralFallback covers empty input, too-short input and backend failures.
var neutralFallback = models.SentimentResult{Label: models.SentimentNeutral, Confidence: 0.5}

// RawClassifier is the pretrained-model collaborator. It receives normalized
// text and returns the model's own label vocabulary plus a confidence.
type RawClassifier interface {
	ClassifyRaw(text string) (label string, confidence float64, err error)
}

// positiveMarkers are strong-praise terms the base model systematically
// under-scores on short colloquial text. A hit forces POSITIVO over a
// NEUTRO/NEGATIVO model verdict; this is a deliberate, lossy correction of a
// known model bias, not a bug.
var positiveMarkers = []string{
	"excelente", "ótimo", "perfeito", "sensacional", "maravilhoso",
	"lindo", "confortável", "recomendo", "adorei", "top", "melhor",
	"sempre", "incrível", "funciona",
}

// overrideConfidence replaces the model confidence whenever a marker fires.
const overrideConfidence = 0.9

// Classifier wraps a RawClassifier with the canonical label mapping and the
// positive-marker override. Safe for repeated sequential calls; the wrapped
// backend is read-only after construction.
type Classifier struct {
	raw     RawClassifier
	markers []string
}

// NewClassifier builds a classifier over the given backend. When markers is
// nil the built-in marker list applies.
func NewClassifier(raw RawClassifier, markers []string) *Classifier {
	if markers == nil {
		markers = positiveMarkers
	}
	return &Classifier{raw: raw, markers: markers}
}

// Classify labels one normalized text. Short input never reaches the model;
// backend errors degrade to NEUTRO so a single bad record cannot abort a run.
func (c *Classifier) Classify(clean string) models.SentimentResult {
	if len(strings.Fields(clean)) < minTokens {
		return neutralFallback
	}

	rawLabel, confidence, err := c.raw.ClassifyRaw(clean)
	if err != nil {
		slog.Warn("[Classifier] Backend failed, falling back to NEUTRO",
			slog.String("error", err.Error()))
		return neutralFallback
	}

	label := models.SentimentFromModelLabel(rawLabel)

	if label == models.SentimentNeutral || label == models.SentimentNegative {
		if c.hasMarker(clean) {
			return models.SentimentResult{Label: models.SentimentPositive, Confidence: overrideConfidence}
		}
	}

	return models.SentimentResult{Label: label, Confidence: confidence}
}

func (c *Classifier) hasMarker(clean string) bool {
	lowered := strings.ToLower(clean)
	for _, marker := range c.markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
