package sentiment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hcalazans/autovoz/internal/models"
)

// Lexicon bundles every word list the pipeline treats as configuration:
// the override markers, the topic-extraction stopwords and the offline
// labeler's vocabularies. Lists stay fixed within a process so runs are
// deterministic.
type Lexicon struct {
	Markers   []string `yaml:"markers"`
	Stopwords []string `yaml:"stopwords"`
	Positive  []string `yaml:"positive"`
	Negative  []string `yaml:"negative"`
	Noise     []string `yaml:"noise"`
}

// DefaultLexicon returns the built-in Portuguese lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Markers: append([]string(nil), positiveMarkers...),
		Stopwords: []string{
			"o", "a", "de", "do", "da", "é", "um", "uma", "e", "para", "se",
		},
		Positive: []string{
			"bom", "boa", "ótimo", "excelente", "fantástico", "perfeito",
			"lindo", "confortável", "econômico", "eficiente", "agradável",
			"top", "sensacional", "incrível", "gostei", "recomendo", "melhor",
		},
		Negative: []string{
			"ruim", "péssimo", "lento", "quebra", "defeito", "problema",
			"caro", "barulho", "terrível", "odeio", "triste", "decepcionado",
			"pior", "péssima", "gasto", "fraco", "horrível", "lamentável",
		},
		Noise: []string{
			"padaria", "pão", "futebol", "vizinho", "uniforme", "pizza",
			"estudar", "uber", "promoção",
		},
	}
}

// LoadLexicon reads a YAML lexicon file. Empty sections keep the built-in
// defaults, so a file may override just one list.
func LoadLexicon(path string) (Lexicon, error) {
	lex := DefaultLexicon()

	data, err := os.ReadFile(path)
	if err != nil {
		return lex, fmt.Errorf("read lexicon: %w", err)
	}

	var loaded Lexicon
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return lex, fmt.Errorf("parse lexicon: %w", err)
	}

	if len(loaded.Markers) > 0 {
		lex.Markers = loaded.Markers
	}
	if len(loaded.Stopwords) > 0 {
		lex.Stopwords = loaded.Stopwords
	}
	if len(loaded.Positive) > 0 {
		lex.Positive = loaded.Positive
	}
	if len(loaded.Negative) > 0 {
		lex.Negative = loaded.Negative
	}
	if len(loaded.Noise) > 0 {
		lex.Noise = loaded.Noise
	}

	return lex, nil
}

// LabelHeuristic labels a stopword-free text by counting lexicon hits.
// It backs the offline labeling tool, not the live dashboard path: texts
// dominated by noise terms, ties and weak single-hit signals all resolve
// to NEUTRO.
func (l Lexicon) LabelHeuristic(processed string) models.Sentiment {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(processed) {
		words[w] = struct{}{}
	}

	positive := countHits(words, l.Positive)
	negative := countHits(words, l.Negative)
	noise := countHits(words, l.Noise)

	if noise >= 1 && positive == 0 && negative == 0 {
		return models.SentimentNeutral
	}
	if positive > negative && positive >= 2 {
		return models.SentimentPositive
	}
	if negative > positive && negative >= 2 {
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}

func countHits(words map[string]struct{}, lexicon []string) int {
	hits := 0
	for _, term := range lexicon {
		if _, ok := words[term]; ok {
			hits++
		}
	}
	return hits
}
