package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Dashboard holds every knob the dashboard service reads from the
// environment. Missing variables fall back to defaults that match a local
// development setup.
type Dashboard struct {
	BindAddr     string
	HistoryLimit int
	CollectLimit int
	TopicCount   int

	// Store selects the history backend: "sqlite" or "dynamodb".
	Store      string
	SQLitePath string

	// Classifier selects the raw backend: "hugot" or "vader".
	Classifier string
	ModelPath  string

	// Collector selects the record source: "simulated", "twitter" or "kafka".
	Collector string

	KafkaBrokers     string
	KafkaTopic       string
	KafkaGroup       string
	KafkaReadTimeout time.Duration

	// LexiconPath optionally points at a YAML file overriding the built-in
	// marker/stopword lexicons.
	LexiconPath string

	CacheEnabled  bool
	OpenAIEnabled bool
}

// LoadDashboard builds the dashboard config from environment variables.
func LoadDashboard() (*Dashboard, error) {
	c := &Dashboard{
		BindAddr:         getEnv("DASHBOARD_BIND_ADDR", "0.0.0.0:8080"),
		HistoryLimit:     getInt("DASHBOARD_HISTORY_LIMIT", 10),
		CollectLimit:     getInt("DASHBOARD_COLLECT_LIMIT", 500),
		TopicCount:       getInt("DASHBOARD_TOPIC_COUNT", 3),
		Store:            getEnv("HISTORY_STORE", "sqlite"),
		SQLitePath:       getEnv("SQLITE_PATH", "autovoz.db"),
		Classifier:       getEnv("CLASSIFIER_BACKEND", "vader"),
		ModelPath:        getEnv("CLASSIFIER_MODEL_PATH", "./models"),
		Collector:        getEnv("COLLECTOR_SOURCE", "simulated"),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "raw-mentions"),
		KafkaGroup:       getEnv("KAFKA_CONSUMER_GROUP", "autovoz-dashboard"),
		KafkaReadTimeout: getDuration("KAFKA_READ_TIMEOUT", "5s"),
		LexiconPath:      getEnv("LEXICON_PATH", ""),
		CacheEnabled:     getEnv("VALKEY_ENABLED", "false") == "true",
		OpenAIEnabled:    getEnv("OPENAI_TECH_SUMMARY", "false") == "true",
	}

	if c.HistoryLimit <= 0 {
		return nil, fmt.Errorf("DASHBOARD_HISTORY_LIMIT must be positive")
	}
	if c.CollectLimit <= 0 {
		return nil, fmt.Errorf("DASHBOARD_COLLECT_LIMIT must be positive")
	}
	if c.TopicCount <= 0 {
		return nil, fmt.Errorf("DASHBOARD_TOPIC_COUNT must be positive")
	}
	switch c.Store {
	case "sqlite", "dynamodb":
	default:
		return nil, fmt.Errorf("HISTORY_STORE must be sqlite or dynamodb, got %q", c.Store)
	}
	switch c.Classifier {
	case "hugot", "vader":
	default:
		return nil, fmt.Errorf("CLASSIFIER_BACKEND must be hugot or vader, got %q", c.Classifier)
	}
	switch c.Collector {
	case "simulated", "twitter", "kafka":
	default:
		return nil, fmt.Errorf("COLLECTOR_SOURCE must be simulated, twitter or kafka, got %q", c.Collector)
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		d, err = time.ParseDuration(fallback)
		if err != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, err))
		}
	}
	return d
}
