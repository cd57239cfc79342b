package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/hcalazans/autovoz/internal/models"
)

const (
	twitterAuthURL   = "https://api.twitter.com/oauth2/token"
	twitterSearchURL = "https://api.twitter.com/2/tweets/search/recent"
	userAgent        = "autovoz-bot/0.1"

	// the recent-search endpoint rejects page sizes outside [10, 100]
	minPageSize = 10
	maxPageSize = 100
)

var (
	twitterInstance *TwitterCollector
	twitterOnce     sync.Once
)

// TwitterCollector fetches recent tweets mentioning a vehicle model via
// the v2 recent-search API, authenticated with app-only client
// credentials.
type TwitterCollector struct {
	client *http.Client
}

func GetTwitterCollector() *TwitterCollector {
	twitterOnce.Do(func() {
		conf := &clientcredentials.Config{
			ClientID:     os.Getenv("TWITTER_CLIENT_ID"),
			ClientSecret: os.Getenv("TWITTER_CLIENT_SECRET"),
			TokenURL:     twitterAuthURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		twitterInstance = &TwitterCollector{
			client: conf.Client(context.Background()),
		}
	})
	return twitterInstance
}

type tweetPayload struct {
	Data []struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		AuthorID  string    `json:"author_id"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
}

// Collect returns up to limit recent tweets mentioning the model. Errors
// are returned as-is; the runner decides whether to degrade to the
// simulated source.
func (t *TwitterCollector) Collect(ctx context.Context, model string, limit int) ([]models.TextRecord, error) {
	pageSize := limit
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if pageSize < minPageSize {
		pageSize = minPageSize
	}

	parsed, err := url.Parse(twitterSearchURL)
	if err != nil {
		return nil, fmt.Errorf("[TwitterCollector] Failed to parse URL: %w", err)
	}
	query := parsed.Query()
	query.Add("query", fmt.Sprintf("%q lang:pt -is:retweet", model))
	query.Add("max_results", strconv.Itoa(pageSize))
	query.Add("tweet.fields", "created_at,author_id")
	parsed.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[TwitterCollector] Request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("[TwitterCollector] Unexpected status %d: %s", resp.StatusCode, body)
	}

	var payload tweetPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("[TwitterCollector] Failed to decode response: %w", err)
	}

	records := make([]models.TextRecord, 0, len(payload.Data))
	for _, tweet := range payload.Data {
		if limit > 0 && len(records) == limit {
			break
		}
		records = append(records, models.TextRecord{
			RawText:   tweet.Text,
			Timestamp: tweet.CreatedAt,
			Author:    tweet.AuthorID,
		})
	}
	return records, nil
}
