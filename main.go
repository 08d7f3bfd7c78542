package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-media/internal/facestore"
	"event-media/internal/handlers"
	"event-media/internal/logging"
	"event-media/internal/middleware"
	"event-media/internal/objectstore"
	"event-media/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Connect to the object store
	store, err := objectstore.New(objectstore.Config{
		Endpoint:  config.StoreEndpoint,
		AccessKey: config.StoreAccessKey,
		SecretKey: config.StoreSecretKey,
		Bucket:    config.StoreBucket,
		Region:    config.StoreRegion,
		UseSSL:    config.StoreUseSSL,
		PublicURL: config.StorePublicURL,
	})
	if err != nil {
		startup.LogFatal("Failed to initialize object store: %v", err)
	}

	// Open the face database
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	faces, err := facestore.New(dbCtx, config.FaceDBPath)
	dbCancel()
	if err != nil {
		startup.LogFatal("Failed to initialize face database: %v", err)
	}
	defer faces.Close()

	// Initialize handlers
	h := handlers.New(store, faces, config)

	// Warm the gallery with an initial listing pass. A store that is slow
	// or briefly unreachable at boot is not fatal; the first refresh
	// request repeats the pass.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := h.WarmUp(ctx); err != nil {
			logging.Warn("Initial listing pass failed: %v", err)
		}
	}()

	// Setup router
	router := setupRouter(h)

	// Apply logging middleware
	handler := middleware.Logger(false)(router)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, faces)

	logging.Info("Server listening on :%s (startup took %v)", config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Gallery routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/media", h.GetMedia).Methods("GET")
	api.HandleFunc("/media/refresh", h.RefreshMedia).Methods("POST")
	api.HandleFunc("/media/next", h.LoadMoreMedia).Methods("POST")
	api.HandleFunc("/media/{key:.*}", h.DeleteMedia).Methods("DELETE")

	// Face routes
	api.HandleFunc("/faces", h.GetFaces).Methods("GET")
	api.HandleFunc("/faces", h.PutFace).Methods("POST")
	api.HandleFunc("/faces/{id}/thumbnail", h.GetFaceThumbnail).Methods("GET")

	// Ingest routes
	api.HandleFunc("/videos", h.UploadVideo).Methods("POST")

	return r
}

func handleShutdown(srv *http.Server, faces *facestore.Store) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Shutdown initiated (%s)", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}
	if err := faces.Close(); err != nil {
		logging.Warn("Face database close error: %v", err)
	}

	logging.Info("Shutdown complete")
}
