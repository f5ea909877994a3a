// Package server exposes the tutoring flow over HTTP: a JSON chat endpoint,
// an OCR-backed image endpoint, and a health probe.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Natnat0905/GeoChat/internal/ocr"
	"github.com/Natnat0905/GeoChat/internal/store"
	"github.com/Natnat0905/GeoChat/internal/tutor"
)

const shutdownTimeout = 10 * time.Second

// Server routes HTTP traffic to the tutor service.
type Server struct {
	config Config
	tutor  *tutor.Service
	ocr    *ocr.Client     // nil disables /process-image
	events store.EventRepo // nil disables chat event recording
	log    *zap.Logger
}

// New assembles a Server. ocrClient and events may be nil; the matching
// features degrade instead of failing.
func New(cfg Config, svc *tutor.Service, ocrClient *ocr.Client, events store.EventRepo, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	return &Server{
		config: cfg,
		tutor:  svc,
		ocr:    ocrClient,
		events: events,
		log:    log,
	}
}

// Handler builds the route table with logging and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/process-image", s.handleProcessImage)
	mux.HandleFunc("/health", s.handleHealth)
	return withLogging(s.log, withCORS(s.config.CORSOrigins, mux))
}

// Run serves until ctx is canceled, then drains in-flight requests for up
// to shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", s.config.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
