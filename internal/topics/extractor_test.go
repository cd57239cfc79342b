package topics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hcalazans/autovoz/internal/models"
	"github.com/hcalazans/autovoz/internal/topics"
)

func TestTopTopicsEmptySubsetFallbacks(t *testing.T) {
	e := topics.NewExtractor(nil)

	// all documents are NEGATIVO, so the POSITIVO subset for "Onix" is empty
	docs := []topics.Document{
		{Text: "motor fraco", Label: models.SentimentNegative},
	}

	require.Equal(t, "Aceitação Geral (motor, design)",
		e.TopTopics(docs, models.SentimentPositive, 3))
	require.Equal(t, "Problemas Genéricos (acabamento, ruído)",
		e.TopTopics(nil, models.SentimentNegative, 3))
	require.Equal(t, "Dados insuficientes para tópicos.",
		e.TopTopics(nil, models.SentimentNeutral, 3))
}

func TestTopTopicsDegenerateVocabulary(t *testing.T) {
	e := topics.NewExtractor(nil)

	// every token is a stopword, leaving nothing to rank
	docs := []topics.Document{
		{Text: "o a de", Label: models.SentimentPositive},
		{Text: "", Label: models.SentimentPositive},
	}

	require.Equal(t, "Dados insuficientes para tópicos.",
		e.TopTopics(docs, models.SentimentPositive, 3))
}

func TestTopTopicsRanking(t *testing.T) {
	e := topics.NewExtractor(nil)

	// "motor" appears in every positive document and dominates the ranking
	docs := []topics.Document{
		{Text: "motor potente", Label: models.SentimentPositive},
		{Text: "motor econômico", Label: models.SentimentPositive},
		{Text: "motor", Label: models.SentimentPositive},
		{Text: "acabamento ruim", Label: models.SentimentNegative},
	}

	require.Equal(t, "motor", e.TopTopics(docs, models.SentimentPositive, 1))
}

func TestTopTopicsFiltersStopwordsAndTarget(t *testing.T) {
	e := topics.NewExtractor(nil)

	docs := []topics.Document{
		{Text: "o consumo de combustível é bom", Label: models.SentimentPositive},
		{Text: "consumo alto", Label: models.SentimentNegative},
	}

	got := e.TopTopics(docs, models.SentimentPositive, 5)
	require.NotContains(t, got, " o ")
	require.NotContains(t, got, " de ")
	require.Contains(t, got, "consumo")
}

func TestTopTopicsDeterministic(t *testing.T) {
	e := topics.NewExtractor(nil)

	docs := []topics.Document{
		{Text: "design lindo painel digital", Label: models.SentimentPositive},
		{Text: "design moderno consumo baixo", Label: models.SentimentPositive},
		{Text: "central multimídia funciona", Label: models.SentimentPositive},
	}

	first := e.TopTopics(docs, models.SentimentPositive, 3)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, e.TopTopics(docs, models.SentimentPositive, 3))
	}
}
