package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caltrackai/caltrack-api/internal/config"
	"github.com/caltrackai/caltrack-api/internal/feedback"
	"github.com/caltrackai/caltrack-api/internal/handlers"
	"github.com/caltrackai/caltrack-api/internal/logger"
	"github.com/caltrackai/caltrack-api/internal/metrics"
	"github.com/caltrackai/caltrack-api/internal/model"
	"github.com/caltrackai/caltrack-api/internal/nutrition"
	"github.com/caltrackai/caltrack-api/internal/pipeline"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	log.WithField("path", cfg.ModelPath).Info("loading model")
	modelServer, err := model.NewServer(cfg.ModelPath, cfg.MetadataPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize model server")
	}
	defer modelServer.Close()

	vocab, err := model.LoadVocabulary(cfg.LabelMapPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load label vocabulary")
	}
	if n := modelServer.OutputSize(); n != vocab.Size() {
		log.WithFields(logrus.Fields{
			"model_outputs": n,
			"vocabulary":    vocab.Size(),
		}).Fatal("model output size does not match label vocabulary")
	}

	catalog, err := nutrition.LoadCatalog(cfg.NutritionCSV)
	if err != nil {
		log.WithError(err).Fatal("failed to load nutrition catalog")
	}
	log.WithFields(logrus.Fields{
		"labels":  vocab.Size(),
		"records": catalog.Len(),
	}).Info("reference data loaded")

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.WithError(err).Fatal("failed to create upload directory")
	}

	store, err := feedback.NewStore(cfg.FeedbackFile)
	if err != nil {
		log.WithError(err).Fatal("failed to open feedback store")
	}
	defer store.Close()

	recorder := metrics.NewRecorder()
	pipe := pipeline.New(modelServer, vocab, catalog, recorder, log, cfg.UploadDir)
	handler := handlers.NewHandler(pipe, store, recorder, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/", enableCORS(handler.Home))
	mux.HandleFunc("/health", enableCORS(handler.Health))
	mux.HandleFunc("/predict", enableCORS(handler.Predict))
	mux.HandleFunc("/feedback", enableCORS(handler.Feedback))
	mux.Handle("/metrics", recorder.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
