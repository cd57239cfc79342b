package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hcalazans/autovoz/config"
	"github.com/hcalazans/autovoz/internal/analysis"
	"github.com/hcalazans/autovoz/internal/api"
	"github.com/hcalazans/autovoz/internal/clients"
	"github.com/hcalazans/autovoz/internal/collector"
	"github.com/hcalazans/autovoz/internal/history"
	"github.com/hcalazans/autovoz/internal/logging"
	"github.com/hcalazans/autovoz/internal/sentiment"
	"github.com/hcalazans/autovoz/internal/techsummary"
	"github.com/hcalazans/autovoz/internal/topics"
)

func main() {
	env := flag.String("env", "dev", "environment config to load")
	flag.Parse()

	config.LoadEnv(*env)
	logging.InitLogger()

	cfg, err := config.LoadDashboard()
	if err != nil {
		slog.Error("[Dashboard] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, sqliteStore, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("[Dashboard] Failed to open history store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if sqliteStore != nil {
		defer sqliteStore.Close()
	}

	lexicon := sentiment.DefaultLexicon()
	if cfg.LexiconPath != "" {
		lexicon, err = sentiment.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			slog.Warn("[Dashboard] Falling back to built-in lexicon",
				slog.String("path", cfg.LexiconPath),
				slog.String("error", err.Error()))
		}
	}

	classifier, closeClassifier, err := buildClassifier(cfg, lexicon)
	if err != nil {
		slog.Error("[Dashboard] Failed to initialize classifier", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeClassifier()

	source, err := buildCollector(cfg)
	if err != nil {
		slog.Error("[Dashboard] Failed to initialize collector", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cache analysis.SummaryCache
	if cfg.CacheEnabled {
		valkey, err := clients.InitValkey()
		if err != nil {
			slog.Warn("[Dashboard] Valkey unavailable, caching disabled",
				slog.String("error", err.Error()))
		} else {
			cache = valkey
			defer clients.CloseValkey()
		}
	}

	runner := analysis.NewRunner(analysis.RunnerParams{
		Source:     source,
		Fallback:   collector.NewSimulated(),
		Classifier: classifier,
		Extractor:  topics.NewExtractor(lexicon.Stopwords),
		Store:      store,
		ProsCons:   buildProsCons(cfg, sqliteStore),
		Cache:      cache,
		TopicCount: cfg.TopicCount,
	})

	server := api.NewServer(api.ServerParams{
		Runner:       runner,
		Store:        store,
		Cache:        cache,
		HistoryLimit: cfg.HistoryLimit,
		CollectLimit: cfg.CollectLimit,
	})

	srv := &http.Server{
		Addr:         cfg.BindAddr,
		Handler:      server.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("[Dashboard] Listening", slog.String("addr", cfg.BindAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Dashboard] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Dashboard] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Dashboard] Shutdown failed", slog.String("error", err.Error()))
	}
}

func buildStore(ctx context.Context, cfg *config.Dashboard) (history.Store, *history.SQLiteStore, error) {
	switch cfg.Store {
	case "dynamodb":
		return history.NewDynamoDBStore(), nil, nil
	default:
		store, err := history.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
}

func buildClassifier(cfg *config.Dashboard, lexicon sentiment.Lexicon) (*sentiment.Classifier, func(), error) {
	if cfg.Classifier == "hugot" {
		hugotClassifier, err := sentiment.GetHugotClassifier(cfg.ModelPath)
		if err != nil {
			return nil, nil, err
		}
		return sentiment.NewClassifier(hugotClassifier, lexicon.Markers), func() {
			if err := hugotClassifier.Close(); err != nil {
				slog.Warn("[Dashboard] Failed to close model session",
					slog.String("error", err.Error()))
			}
		}, nil
	}
	return sentiment.NewClassifier(sentiment.NewVADERClassifier(), lexicon.Markers), func() {}, nil
}

func buildCollector(cfg *config.Dashboard) (analysis.Collector, error) {
	switch cfg.Collector {
	case "twitter":
		return collector.GetTwitterCollector(), nil
	case "kafka":
		return collector.NewKafkaCollector(collector.KafkaCollectorConfig{
			Brokers:     cfg.KafkaBrokers,
			Topic:       cfg.KafkaTopic,
			Group:       cfg.KafkaGroup,
			ReadTimeout: cfg.KafkaReadTimeout,
		})
	default:
		return collector.NewSimulated(), nil
	}
}

func buildProsCons(cfg *config.Dashboard, sqliteStore *history.SQLiteStore) analysis.ProsConsProvider {
	if cfg.OpenAIEnabled {
		return techsummary.GetOpenAIProvider()
	}
	if sqliteStore != nil {
		return sqliteStore
	}
	return techsummary.Static{}
}
