package history

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hcalazans/autovoz/internal/models"
)

// DefaultLimit caps history reads when the caller does not say otherwise.
const DefaultLimit = 10

// Store is the append-only history collaborator. Implementations map the
// canonical field names (model, synthesis, distribution, generated_at) onto
// whatever the backing store calls them. No updates, no deletes.
type Store interface {
	AppendSummary(ctx context.Context, summary models.AnalysisSummary) error
	FetchHistory(ctx context.Context, limit int) ([]models.AnalysisSummary, error)
}

// The persisted string is anchored on these literals; they are the wire
// contract between the summarizer and every reader, and must never change
// without versioning both sides.
var (
	positivePattern = regexp.MustCompile(`POSITIVO:\s*([\d.]+)`)
	negativePattern = regexp.MustCompile(`NEGATIVO:\s*([\d.]+)`)
	neutralPattern  = regexp.MustCompile(`NEUTRO:\s*([\d.]+)`)
)

// ParseDistribution extracts the three percentages from a distribution
// string. A label that cannot be found degrades that field to 0.0 rather
// than failing the whole read.
func ParseDistribution(text string) models.Distribution {
	return models.Distribution{
		Positive: extractPercent(positivePattern, text),
		Negative: extractPercent(negativePattern, text),
		Neutral:  extractPercent(neutralPattern, text),
	}
}

func extractPercent(pattern *regexp.Regexp, text string) float64 {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0.0
	}
	v, err := strconv.ParseFloat(strings.TrimRight(m[1], "."), 64)
	if err != nil {
		return 0.0
	}
	return v
}

// LatestAnalysis is one history record prepared for display: the stored
// casing of the model name is preserved and the percentages are already
// re-extracted.
type LatestAnalysis struct {
	Model        string                 `json:"model"`
	Synthesis    string                 `json:"synthesis"`
	Distribution string                 `json:"distribution"`
	GeneratedAt  string                 `json:"generated_at"`
	Percentages  models.Distribution    `json:"percentages"`
	Summary      models.AnalysisSummary `json:"summary"`
}

// LatestFor returns the most recent analysis of a model, matching the name
// case-insensitively. Absence is signaled by the bool, never by an error or
// a fabricated record.
func LatestFor(summaries []models.AnalysisSummary, model string) (*LatestAnalysis, bool) {
	var matched []models.AnalysisSummary
	for _, s := range summaries {
		if strings.EqualFold(s.Model, model) {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return nil, false
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].GeneratedAt.After(matched[j].GeneratedAt)
	})

	latest := matched[0]
	return &LatestAnalysis{
		Model:        latest.Model,
		Synthesis:    collapse(latest.Synthesis),
		Distribution: collapse(latest.Distribution),
		GeneratedAt:  latest.GeneratedAt.Format("02/01/2006 15:04"),
		Percentages:  ParseDistribution(latest.Distribution),
		Summary:      latest,
	}, true
}

// RecentModels lists distinct model names in most-recent-first order,
// preserving the stored casing of each model's newest record. Used to pick
// the comparison pair.
func RecentModels(summaries []models.AnalysisSummary, n int) []string {
	sorted := append([]models.AnalysisSummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GeneratedAt.After(sorted[j].GeneratedAt)
	})

	seen := make(map[string]struct{})
	var out []string
	for _, s := range sorted {
		key := strings.ToUpper(s.Model)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s.Model)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
