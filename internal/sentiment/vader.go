package sentiment

import (
	"math"

	"github.com/jonreiter/govader"
)

// VADERClassifier is the lexicon-based raw backend used for english content
// and for development runs that cannot ship an ONNX model. The analyzer is
// stateless after construction.
type VADERClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERClassifier() *VADERClassifier {
	return &VADERClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// ClassifyRaw maps the VADER compound score onto the generic label
// vocabulary the canonical mapping table understands.
func (v *VADERClassifier) ClassifyRaw(text string) (string, float64, error) {
	scores := v.analyzer.PolarityScores(text)
	compound := scores.Compound

	var label string
	switch {
	case compound >= 0.20:
		label = "POSITIVE"
	case compound <= -0.20:
		label = "NEGATIVE"
	default:
		label = "NEUTRAL"
	}

	return label, math.Abs(compound), nil
}
