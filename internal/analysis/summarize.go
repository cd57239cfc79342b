package analysis

import (
	"fmt"
	"strings"

	"github.com/hcalazans/autovoz/internal/models"
)

// Summarize computes the sentiment distribution of one run as percentages.
// Buckets with no records contribute 0.0; an empty run is all zeros.
func Summarize(labels []models.Sentiment) models.Distribution {
	var d models.Distribution
	if len(labels) == 0 {
		return d
	}

	total := float64(len(labels))
	for _, label := range labels {
		switch label {
		case models.SentimentPositive:
			d.Positive++
		case models.SentimentNegative:
			d.Negative++
		default:
			d.Neutral++
		}
	}

	d.Positive = d.Positive / total * 100
	d.Negative = d.Negative / total * 100
	d.Neutral = d.Neutral / total * 100
	return d
}

// FormatDistribution renders the fixed-format distribution string. This
// exact layout is re-parsed by the history readers: it is a versioned
// writer/reader contract, not cosmetics.
func FormatDistribution(d models.Distribution) string {
	return fmt.Sprintf("Distribuição: POSITIVO: %.1f%%, NEGATIVO: %.1f%%, NEUTRO: %.1f%%.",
		d.Positive, d.Negative, d.Neutral)
}

// ComposeSynthesis builds the single-paragraph narrative combining the top
// topics with the curated technical summary. Whitespace is collapsed so the
// stored text is one clean line.
func ComposeSynthesis(model, positiveTopics, negativeTopics string, tech models.TechnicalSummary) string {
	raw := fmt.Sprintf(
		"O %s possui boa aceitação pelo %s e %s, mas o histórico de %s e a %s são pontos de atenção destacados por consumidores.",
		model, positiveTopics, tech.Advantages, negativeTopics, tech.Disadvantages)
	return strings.Join(strings.Fields(raw), " ")
}
