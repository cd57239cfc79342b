package topics

import (
	"math"
	"sort"
	"strings"

	"github.com/hcalazans/autovoz/internal/models"
)

// Fallback phrases returned instead of errors whenever the filtered corpus
// cannot support term ranking. Exact wording is part of the dashboard
// output, keep it stable.
const (
	fallbackPositive     = "Aceitação Geral (motor, design)"
	fallbackNegative     = "Problemas Genéricos (acabamento, ruído)"
	fallbackInsufficient = "Dados insuficientes para tópicos."
	fallbackNoMentions   = "Nenhuma menção significativa."
)

const maxFeatures = 1000

// Document is one normalized text with its final sentiment label.
type Document struct {
	Text  string
	Label models.Sentiment
}

// Extractor ranks unigrams and bigrams of a sentiment-filtered corpus by
// TF-IDF weight. Given the same corpus and n the output is stable: the
// vocabulary is sorted alphabetically and ties break on the lower index.
type Extractor struct {
	stopwords map[string]struct{}
}

// NewExtractor builds an extractor with the given stopword list; nil keeps
// the built-in Portuguese function words.
func NewExtractor(stopwords []string) *Extractor {
	if stopwords == nil {
		stopwords = []string{"o", "a", "de", "do", "da", "é", "um", "uma", "e", "para", "se"}
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[w] = struct{}{}
	}
	return &Extractor{stopwords: set}
}

// TopTopics returns the top-n terms of the target-sentiment subset joined
// into a human-readable phrase. It never fails and never returns an empty
// string: degenerate inputs resolve to fixed fallback phrases.
func (e *Extractor) TopTopics(docs []Document, target models.Sentiment, n int) string {
	var filtered []string
	for _, doc := range docs {
		if doc.Label == target {
			filtered = append(filtered, doc.Text)
		}
	}

	if len(filtered) == 0 {
		switch target {
		case models.SentimentPositive:
			return fallbackPositive
		case models.SentimentNegative:
			return fallbackNegative
		default:
			return fallbackInsufficient
		}
	}

	terms := e.rank(filtered)
	if terms == nil {
		return fallbackInsufficient
	}

	if n > len(terms) {
		n = len(terms)
	}
	if n <= 0 {
		return fallbackNoMentions
	}

	return strings.Join(terms[:n], " e ")
}

// rank computes aggregate TF-IDF weights over the corpus and returns every
// vocabulary term ordered by descending weight. A degenerate vocabulary
// (all tokens stopworded away) yields nil.
func (e *Extractor) rank(corpus []string) []string {
	tokenized := make([][]string, len(corpus))
	corpusFreq := make(map[string]int)
	for i, text := range corpus {
		tokens := e.terms(text)
		tokenized[i] = tokens
		for _, t := range tokens {
			corpusFreq[t]++
		}
	}

	if len(corpusFreq) == 0 {
		return nil
	}

	vocab := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	if len(vocab) > maxFeatures {
		// keep the most frequent terms, alphabetical on ties
		sort.SliceStable(vocab, func(i, j int) bool {
			return corpusFreq[vocab[i]] > corpusFreq[vocab[j]]
		})
		vocab = vocab[:maxFeatures]
		sort.Strings(vocab)
	}

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	// document frequency per term
	df := make([]int, len(vocab))
	for _, tokens := range tokenized {
		seen := make(map[int]struct{})
		for _, t := range tokens {
			if i, ok := index[t]; ok {
				seen[i] = struct{}{}
			}
		}
		for i := range seen {
			df[i]++
		}
	}

	// smoothed idf, then per-document L2-normalized tf-idf summed per term
	docs := float64(len(tokenized))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+docs)/(1+float64(d))) + 1
	}

	weights := make([]float64, len(vocab))
	tf := make([]float64, len(vocab))
	for _, tokens := range tokenized {
		for i := range tf {
			tf[i] = 0
		}
		for _, t := range tokens {
			if i, ok := index[t]; ok {
				tf[i]++
			}
		}
		// norm and weights accumulate in vocabulary order, keeping the
		// float sums identical across runs
		var norm float64
		for i, count := range tf {
			v := count * idf[i]
			norm += v * v
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for i, count := range tf {
			if count > 0 {
				weights[i] += count * idf[i] / norm
			}
		}
	}

	order := make([]int, len(vocab))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if weights[order[a]] == weights[order[b]] {
			return order[a] < order[b]
		}
		return weights[order[a]] > weights[order[b]]
	})

	ranked := make([]string, len(order))
	for i, idx := range order {
		ranked[i] = vocab[idx]
	}
	return ranked
}

// terms produces stopword-free unigrams plus bigrams over the remaining
// token sequence.
func (e *Extractor) terms(text string) []string {
	var kept []string
	for _, tok := range strings.Fields(text) {
		if _, skip := e.stopwords[tok]; skip {
			continue
		}
		kept = append(kept, tok)
	}

	terms := make([]string, 0, len(kept)*2)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}
