package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/hcalazans/autovoz/internal/models"
	"github.com/hcalazans/autovoz/internal/preprocess"
)

// KafkaCollector drains buffered mention records from a topic. An upstream
// scraper publishes raw mentions; one analysis run consumes up to limit of
// them and stops at the first read timeout, so a quiet topic yields an
// empty (degradable) batch instead of blocking the run.
type KafkaCollector struct {
	consumer    *kafka.Consumer
	readTimeout time.Duration
}

type KafkaCollectorConfig struct {
	Brokers     string
	Topic       string
	Group       string
	ReadTimeout time.Duration
}

func NewKafkaCollector(cfg KafkaCollectorConfig) (*KafkaCollector, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
		"group.id":          cfg.Group,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaCollector] Failed to create consumer: %w", err)
	}

	if err := consumer.SubscribeTopics([]string{cfg.Topic}, nil); err != nil {
		consumer.Close()
		return nil, fmt.Errorf("[KafkaCollector] Failed to subscribe to %s: %w", cfg.Topic, err)
	}

	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	slog.Info("[KafkaCollector] Subscribed",
		slog.String("topic", cfg.Topic),
		slog.String("group", cfg.Group))

	return &KafkaCollector{consumer: consumer, readTimeout: timeout}, nil
}

func (k *KafkaCollector) Close() error {
	return k.consumer.Close()
}

type mentionMessage struct {
	Model     string    `json:"model"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// Collect reads messages until limit records mention the model or the
// topic goes quiet for one read timeout.
func (k *KafkaCollector) Collect(ctx context.Context, model string, limit int) ([]models.TextRecord, error) {
	var records []models.TextRecord

	for limit <= 0 || len(records) < limit {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		msg, err := k.consumer.ReadMessage(k.readTimeout)
		if err != nil {
			var kafkaErr kafka.Error
			if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrTimedOut {
				break
			}
			return records, fmt.Errorf("[KafkaCollector] Read failed: %w", err)
		}

		var mention mentionMessage
		if err := json.Unmarshal(msg.Value, &mention); err != nil {
			slog.Warn("[KafkaCollector] Skipping malformed message",
				slog.String("error", err.Error()))
			continue
		}

		if mention.Model != "" && !strings.EqualFold(mention.Model, model) {
			continue
		}

		// forum and reddit scrapers publish markdown-formatted bodies
		records = append(records, models.TextRecord{
			RawText:   preprocess.FlattenMarkdown(mention.Text),
			Timestamp: mention.Timestamp,
			Author:    mention.Author,
		})
	}

	slog.Info("[KafkaCollector] Drained records",
		slog.String("model", model),
		slog.Int("count", len(records)))
	return records, nil
}
