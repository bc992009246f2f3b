// Command newsroom runs the article generation service. It loads the
// generated town and population from DATA_DIR, then produces a batch of
// articles per publication cycle, appending them to articles.csv and
// optionally publishing each one to Kafka.
//
// Run cmd/inittown first to create town.json and people.csv.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	httpadapter "github.com/couchcryptid/gazette-newsroom/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/gazette-newsroom/internal/adapter/kafka"
	"github.com/couchcryptid/gazette-newsroom/internal/adapter/llm"
	"github.com/couchcryptid/gazette-newsroom/internal/config"
	"github.com/couchcryptid/gazette-newsroom/internal/gen"
	"github.com/couchcryptid/gazette-newsroom/internal/observability"
	"github.com/couchcryptid/gazette-newsroom/internal/pipeline"
	"github.com/couchcryptid/gazette-newsroom/internal/seed"
	"github.com/couchcryptid/gazette-newsroom/internal/store"
)

func main() {
	once := flag.Bool("once", false, "generate a single batch and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	articleCfg, err := config.LoadArticleConfig(cfg.ArticleConfigPath)
	if err != nil {
		logger.Error("failed to load article config", "error", err)
		os.Exit(1)
	}
	newsroomCfg, err := config.LoadNewsroom(cfg.NewsroomPath)
	if err != nil {
		logger.Error("failed to load newsroom config", "error", err)
		os.Exit(1)
	}

	town, err := store.LoadTown(filepath.Join(cfg.DataDir, "town.json"))
	if err != nil {
		logger.Error("failed to load town, run cmd/inittown first", "error", err)
		os.Exit(1)
	}
	people, err := store.LoadPeople(filepath.Join(cfg.DataDir, "people.csv"))
	if err != nil {
		logger.Error("failed to load population, run cmd/inittown first", "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		"town", town.Name, "population", town.Population, "people", len(people))

	// Initialize the model client (feature-flagged via OPENAI_ENABLED).
	var completer pipeline.Completer
	if cfg.OpenAIEnabled {
		apiKey, err := llm.LoadAPIKey(cfg.OpenAICredentialsFile)
		if err != nil {
			logger.Error("failed to load model credentials", "error", err)
			os.Exit(1)
		}
		completer = llm.NewClient(llm.Options{
			APIKey:      apiKey,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.OpenAITemperature,
			TopP:        cfg.OpenAITopP,
			MaxTokens:   cfg.OpenAIMaxTokens,
			Timeout:     cfg.OpenAITimeout,
			BaseURL:     cfg.OpenAIBaseURL,
		})
		metrics.LLMEnabled.Set(1)
		logger.Info("model completion enabled", "model", cfg.OpenAIModel, "timeout", cfg.OpenAITimeout)
	} else {
		logger.Info("model completion disabled, writing placeholder articles")
	}

	// Syndication is enabled only when brokers are configured.
	var publisher pipeline.Publisher
	var publisherClose func() error
	if cfg.SyndicationEnabled() {
		kp := kafkaadapter.NewPublisher(cfg, logger)
		publisher = kp
		publisherClose = kp.Close
		logger.Info("syndication enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("syndication disabled")
	}

	rng := gen.NewSeededRand(0)
	sampler := seed.NewSampler(rng, articleCfg)
	articles := store.NewArticles(filepath.Join(cfg.DataDir, "articles.csv"))

	newsroom := pipeline.New(town, people, sampler, completer, articles, publisher, rng,
		pipeline.Options{
			ArticleCount:     newsroomCfg.Articles.Count,
			ArticleDelay:     newsroomCfg.Articles.Delay.Std(),
			BackupBeforeSave: newsroomCfg.Articles.SaveOptions.BackupBeforeSave,
			ArticleLimit:     newsroomCfg.Articles.SaveOptions.ArticleLimit,
			PublishInterval:  cfg.PublishInterval,
		},
		logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		generated, err := newsroom.RunOnce(ctx)
		closePublisher(publisherClose, logger)
		if err != nil {
			logger.Error("article batch failed", "error", err, "generated", generated)
			os.Exit(1)
		}
		return
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, newsroom, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := newsroom.Run(ctx); err != nil {
			logger.Error("newsroom error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	closePublisher(publisherClose, logger)

	logger.Info("shutdown complete")
}

func closePublisher(closeFn func() error, logger *slog.Logger) {
	if closeFn == nil {
		return
	}
	if err := closeFn(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
}
