package sentiment_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hcalazans/autovoz/internal/models"
	"github.com/hcalazans/autovoz/internal/sentiment"
)

// fakeRaw returns canned labels per input and records whether it was called.
type fakeRaw struct {
	label      string
	confidence float64
	err        error
	calls      int
}

func (f *fakeRaw) ClassifyRaw(text string) (string, float64, error) {
	f.calls++
	return f.label, f.confidence, f.err
}

func TestClassifyShortInputSkipsModel(t *testing.T) {
	raw := &fakeRaw{label: "LABEL_2", confidence: 0.99}
	c := sentiment.NewClassifier(raw, nil)

	for _, input := range []string{"", "carro", "carro bom"} {
		got := c.Classify(input)
		require.Equal(t, models.SentimentNeutral, got.Label)
		require.Equal(t, 0.5, got.Confidence)
	}
	require.Zero(t, raw.calls, "model must not be invoked for short input")
}

func TestClassifyLabelMapping(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Sentiment
	}{
		{raw: "LABEL_2", want: models.SentimentPositive},
		{raw: "POSITIVE", want: models.SentimentPositive},
		{raw: "LABEL_0", want: models.SentimentNegative},
		{raw: "NEGATIVE", want: models.SentimentNegative},
		{raw: "LABEL_1", want: models.SentimentNeutral},
		{raw: "NEUTRAL", want: models.SentimentNeutral},
		{raw: "something_else", want: models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := sentiment.NewClassifier(&fakeRaw{label: tt.raw, confidence: 0.8}, nil)
			// no marker words so the override cannot fire
			got := c.Classify("motor fraco demais mesmo")
			require.Equal(t, tt.want, got.Label)
		})
	}
}

func TestClassifyPositiveMarkerOverride(t *testing.T) {
	for _, rawLabel := range []string{"LABEL_1", "LABEL_0"} {
		c := sentiment.NewClassifier(&fakeRaw{label: rawLabel, confidence: 0.7}, nil)
		got := c.Classify("o carro é excelente mesmo")
		require.Equal(t, models.SentimentPositive, got.Label)
		require.Equal(t, 0.9, got.Confidence)
	}

	// a positive verdict keeps the model confidence untouched
	c := sentiment.NewClassifier(&fakeRaw{label: "LABEL_2", confidence: 0.7}, nil)
	got := c.Classify("o carro é excelente mesmo")
	require.Equal(t, models.SentimentPositive, got.Label)
	require.Equal(t, 0.7, got.Confidence)
}

func TestClassifyBackendErrorDegradesToNeutral(t *testing.T) {
	c := sentiment.NewClassifier(&fakeRaw{err: fmt.Errorf("model unavailable")}, nil)
	got := c.Classify("motor fraco demais mesmo")
	require.Equal(t, models.SentimentNeutral, got.Label)
	require.Equal(t, 0.5, got.Confidence)
}

func TestLabelHeuristic(t *testing.T) {
	lex := sentiment.DefaultLexicon()

	tests := []struct {
		name  string
		input string
		want  models.Sentiment
	}{
		{name: "strong positive", input: "carro excelente confortável gostei", want: models.SentimentPositive},
		{name: "strong negative", input: "motor fraco caro problema", want: models.SentimentNegative},
		{name: "single weak hit", input: "carro bom", want: models.SentimentNeutral},
		{name: "tie", input: "bom gostei ruim caro", want: models.SentimentNeutral},
		{name: "noise only", input: "comi pizza padaria hoje", want: models.SentimentNeutral},
		{name: "empty", input: "", want: models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, lex.LabelHeuristic(tt.input))
		})
	}
}

func TestLoadLexiconKeepsDefaultsOnPartialFile(t *testing.T) {
	path := writeTempLexicon(t, "markers:\n  - show\n")

	lex, err := sentiment.LoadLexicon(path)
	require.NoError(t, err)
	require.Equal(t, []string{"show"}, lex.Markers)
	require.NotEmpty(t, lex.Stopwords)
	require.NotEmpty(t, lex.Positive)
}

func TestLoadLexiconMissingFileFallsBack(t *testing.T) {
	lex, err := sentiment.LoadLexicon("does/not/exist.yaml")
	require.Error(t, err)
	require.Equal(t, sentiment.DefaultLexicon(), lex)
}

func writeTempLexicon(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
