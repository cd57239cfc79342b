package history

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/hcalazans/autovoz/internal/clients"
	"github.com/hcalazans/autovoz/internal/models"
)

const summariesTableName = "AnalysisSummaries"

// DynamoDBStore persists the history in a DynamoDB table. Field names are
// mapped from the canonical names onto the table's snake_case attributes.
type DynamoDBStore struct {
	client *dynamodb.Client
}

func NewDynamoDBStore() *DynamoDBStore {
	return &DynamoDBStore{client: clients.GetDynamoDBClient()}
}

type dynamoSummary struct {
	ID           string `dynamodbav:"id"`
	Model        string `dynamodbav:"model"`
	Synthesis    string `dynamodbav:"synthesis"`
	Distribution string `dynamodbav:"distribution"`
	GeneratedAt  int64  `dynamodbav:"generated_at"`
}

// AppendSummary writes one immutable item.
func (d *DynamoDBStore) AppendSummary(ctx context.Context, summary models.AnalysisSummary) error {
	item, err := attributevalue.MarshalMap(dynamoSummary{
		ID:           summary.ID,
		Model:        summary.Model,
		Synthesis:    summary.Synthesis,
		Distribution: summary.Distribution,
		GeneratedAt:  summary.GeneratedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal summary: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(summariesTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to append summary: %w", err)
	}

	slog.Info("[DynamoDB] Summary appended",
		slog.String("model", summary.Model),
		slog.String("id", summary.ID))
	return nil
}

// FetchHistory scans the table, orders newest first and caps at limit. The
// table stays small (one row per analysis run), so a paginated scan is the
// whole read path.
func (d *DynamoDBStore) FetchHistory(ctx context.Context, limit int) ([]models.AnalysisSummary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var items []dynamoSummary
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(summariesTableName),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for summaries failed: %w", err)
		}
		var page []dynamoSummary
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("[DynamoDB] Failed to unmarshal summary page: %w", err)
		}
		items = append(items, page...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].GeneratedAt > items[j].GeneratedAt
	})
	if len(items) > limit {
		items = items[:limit]
	}

	summaries := make([]models.AnalysisSummary, 0, len(items))
	for _, it := range items {
		summaries = append(summaries, models.AnalysisSummary{
			ID:           it.ID,
			Model:        it.Model,
			Synthesis:    it.Synthesis,
			Distribution: it.Distribution,
			GeneratedAt:  time.Unix(it.GeneratedAt, 0).UTC(),
		})
	}

	slog.Info("[DynamoDB] Successfully retrieved summaries",
		slog.Int("count", len(summaries)))
	return summaries, nil
}
