package techsummary

import (
	"context"

	"github.com/hcalazans/autovoz/internal/models"
)

// Static always answers N/A. It is the default provider when no curated
// store and no generator is configured.
type Static struct{}

func (Static) LookupProsCons(ctx context.Context, model string) models.TechnicalSummary {
	return models.UnknownTechnicalSummary()
}
