package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinscribe-ai/platform/pkg/clinical"
	"github.com/clinscribe-ai/platform/pkg/common/config"
	"github.com/clinscribe-ai/platform/pkg/common/database"
	"github.com/clinscribe-ai/platform/pkg/common/kafka"
	"github.com/clinscribe-ai/platform/pkg/common/logger"
	"github.com/clinscribe-ai/platform/pkg/extraction"
	"github.com/clinscribe-ai/platform/pkg/labeler"
	"github.com/clinscribe-ai/platform/pkg/observability/metrics"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	cfg := config.Load()

	vocab, err := clinical.LoadVocabulary(cfg.VocabularyPath)
	if err != nil {
		logger.Log.WithError(err).Warn("Falling back to default clinical vocabulary")
	}
	patterns, err := clinical.NewPatternSet(vocab)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to compile clinical patterns")
	}
	extractor := clinical.NewExtractor(patterns, cfg.AttributeWindow, cfg.NegationWindow)

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to database")
	}
	repo := extraction.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate extraction schema")
	}

	producer := kafka.NewProducer(kafka.TopicExtractions)
	defer producer.Close()

	dlq := kafka.NewProducer(kafka.TopicExtractionsDLQ)
	defer dlq.Close()

	consumer := kafka.NewConsumer(kafka.TopicTranscripts, "extraction-service")
	defer consumer.Close()

	service := extraction.NewService(
		extractor,
		labeler.NewClient(cfg),
		repo,
		producer,
		dlq,
		database.GetRedis(),
		cfg.ExtractionCacheTTL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Consume(ctx, service.HandleTranscriptEvent); err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Fatal("Consumer error")
		}
	}()

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods("GET")
	extraction.NewHTTPHandler(service, cfg.MaxRequestBody).Register(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, "8083"),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": "8083",
		}).Info("Extraction Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Extraction Service...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	database.ClosePostgres()
	database.CloseRedis()

	logger.Log.Info("Extraction Service stopped")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
