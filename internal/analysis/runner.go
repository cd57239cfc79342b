package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hcalazans/autovoz/internal/history"
	"github.com/hcalazans/autovoz/internal/models"
	"github.com/hcalazans/autovoz/internal/preprocess"
	"github.com/hcalazans/autovoz/internal/sentiment"
	"github.com/hcalazans/autovoz/internal/topics"
)

// Collector supplies the raw records for one run. How they are obtained
// (network, broker, simulation) is the collector's business.
type Collector interface {
	Collect(ctx context.Context, model string, limit int) ([]models.TextRecord, error)
}

// ProsConsProvider is the technical-summary collaborator. It never errors
// outward; absent data comes back as N/A.
type ProsConsProvider interface {
	LookupProsCons(ctx context.Context, model string) models.TechnicalSummary
}

// SummaryCache is an optional latest-summary cache. Both methods are
// best-effort.
type SummaryCache interface {
	SetLatest(ctx context.Context, summary models.AnalysisSummary)
	GetLatest(ctx context.Context, model string) (models.AnalysisSummary, bool)
}

// Runner drives one synchronous analysis: collect, normalize, classify,
// extract topics, aggregate, compose and persist. One call, one new
// history row.
type Runner struct {
	source     Collector
	fallback   Collector
	classifier *sentiment.Classifier
	extractor  *topics.Extractor
	store      history.Store
	prosCons   ProsConsProvider
	cache      SummaryCache
	topicCount int
}

// RunnerParams collects the runner's collaborators. Fallback must be a
// source that cannot fail (the simulated dataset); Cache may be nil.
type RunnerParams struct {
	Source     Collector
	Fallback   Collector
	Classifier *sentiment.Classifier
	Extractor  *topics.Extractor
	Store      history.Store
	ProsCons   ProsConsProvider
	Cache      SummaryCache
	TopicCount int
}

func NewRunner(p RunnerParams) *Runner {
	if p.TopicCount <= 0 {
		p.TopicCount = 3
	}
	return &Runner{
		source:     p.Source,
		fallback:   p.Fallback,
		classifier: p.Classifier,
		extractor:  p.Extractor,
		store:      p.Store,
		prosCons:   p.ProsCons,
		cache:      p.Cache,
		topicCount: p.TopicCount,
	}
}

// RunResult reports one completed analysis. Degraded marks runs that fell
// back to the simulated dataset because the collector failed or came back
// empty.
type RunResult struct {
	Summary        models.AnalysisSummary    `json:"summary"`
	Distribution   models.Distribution       `json:"distribution"`
	PositiveTopics string                    `json:"positive_topics"`
	NegativeTopics string                    `json:"negative_topics"`
	Records        []models.ClassifiedRecord `json:"records"`
	Degraded       bool                      `json:"degraded"`
}

// Run executes one analysis batch to completion. Upstream failures degrade
// to the fallback source; the only error surfaced to the caller is a
// failure to append the final summary.
func (r *Runner) Run(ctx context.Context, model string, limit int) (*RunResult, error) {
	records, err := r.source.Collect(ctx, model, limit)
	degraded := false
	if err != nil || len(records) == 0 {
		if err != nil {
			slog.Warn("[Runner] Collector failed, switching to fallback dataset",
				slog.String("model", model),
				slog.String("error", err.Error()))
		} else {
			slog.Warn("[Runner] Collector returned no records, switching to fallback dataset",
				slog.String("model", model))
		}
		degraded = true
		records, err = r.fallback.Collect(ctx, model, limit)
		if err != nil {
			return nil, fmt.Errorf("fallback collector failed: %w", err)
		}
	}

	classified := make([]models.ClassifiedRecord, 0, len(records))
	docs := make([]topics.Document, 0, len(records))
	labels := make([]models.Sentiment, 0, len(records))
	for _, rec := range records {
		clean := preprocess.Normalize(rec.RawText)
		result := r.classifier.Classify(clean)

		classified = append(classified, models.ClassifiedRecord{
			TextRecord: rec,
			CleanText:  clean,
			Result:     result,
		})
		docs = append(docs, topics.Document{Text: clean, Label: result.Label})
		labels = append(labels, result.Label)
	}

	positiveTopics := r.extractor.TopTopics(docs, models.SentimentPositive, r.topicCount)
	negativeTopics := r.extractor.TopTopics(docs, models.SentimentNegative, r.topicCount)

	distribution := Summarize(labels)
	tech := r.prosCons.LookupProsCons(ctx, model)

	summary := models.AnalysisSummary{
		ID:           uuid.NewString(),
		Model:        model,
		Synthesis:    ComposeSynthesis(model, positiveTopics, negativeTopics, tech),
		Distribution: FormatDistribution(distribution),
		GeneratedAt:  time.Now().UTC(),
	}

	if err := r.store.AppendSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("append summary: %w", err)
	}

	if r.cache != nil {
		r.cache.SetLatest(ctx, summary)
	}

	slog.Info("[Runner] Analysis completed",
		slog.String("model", model),
		slog.Int("records", len(classified)),
		slog.Bool("degraded", degraded))

	return &RunResult{
		Summary:        summary,
		Distribution:   distribution,
		PositiveTopics: positiveTopics,
		NegativeTopics: negativeTopics,
		Records:        classified,
		Degraded:       degraded,
	}, nil
}
