package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/hcalazans/autovoz/internal/models"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

const latestSummaryTTL = 6 * 60 * 60 // seconds

// ValkeyClient caches the latest analysis summary per model so the
// dashboard's hot read path skips the history store.
type ValkeyClient struct {
	Client valkey.Client
}

func InitValkey() (*ValkeyClient, error) {
	var initErr error
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		valkeyPassword := os.Getenv("VALKEY_PASSWORD")
		useTLS := os.Getenv("VALKEY_TLS") == "true"

		opts := valkey.ClientOption{
			InitAddress:      []string{valkeyAddr},
			Password:         valkeyPassword,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}

		if useTLS {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if c := client.Do(ctx, client.B().Ping().Build()); c.Error() != nil {
			initErr = fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error())
			return
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})

	if initErr != nil {
		return nil, initErr
	}
	return valkeyInstance, nil
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func latestSummaryKey(model string) string {
	return "autovoz:latest:" + model
}

// SetLatest caches the newest summary for a model. Failures are logged and
// swallowed, caching is strictly best-effort.
func (vc *ValkeyClient) SetLatest(ctx context.Context, summary models.AnalysisSummary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("[ValkeyClient] Failed to marshal summary for cache",
			slog.String("error", err.Error()))
		return
	}

	cmd := vc.Client.B().Set().
		Key(latestSummaryKey(summary.Model)).
		Value(string(payload)).
		ExSeconds(latestSummaryTTL).
		Build()

	if res := vc.Client.Do(ctx, cmd); res.Error() != nil {
		slog.Warn("[ValkeyClient] Failed to cache latest summary",
			slog.String("model", summary.Model),
			slog.String("error", res.Error().Error()))
	}
}

// GetLatest returns the cached newest summary for a model, if present.
func (vc *ValkeyClient) GetLatest(ctx context.Context, model string) (models.AnalysisSummary, bool) {
	var summary models.AnalysisSummary

	res := vc.Client.Do(ctx, vc.Client.B().Get().Key(latestSummaryKey(model)).Build())
	if res.Error() != nil {
		return summary, false
	}

	raw, err := res.ToString()
	if err != nil {
		return summary, false
	}
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		slog.Warn("[ValkeyClient] Failed to unmarshal cached summary",
			slog.String("model", model),
			slog.String("error", err.Error()))
		return summary, false
	}

	return summary, true
}
