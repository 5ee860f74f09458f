// Package httpapi exposes the orchestrator over a small JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"marketbrain/internal/brain"
)

const (
	shutdownTimeout = 5 * time.Second
	pruneInterval   = time.Minute
)

// Server serves the orchestrator on one address.
type Server struct {
	addr   string
	brain  *brain.Orchestrator
	log    *zap.Logger
	router *mux.Router
}

func New(addr string, b *brain.Orchestrator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		addr:  addr,
		brain: b,
		log:   log.With(zap.String("component", "httpapi")),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger, s.recoverPanic)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/quotes", s.handleQuotes).Methods(http.MethodGet)
	v1.HandleFunc("/quotes/{symbol}", s.handleQuote).Methods(http.MethodGet)
	v1.HandleFunc("/history/{symbol}", s.handleHistory).Methods(http.MethodGet)
	v1.HandleFunc("/options/{symbol}", s.handleOptionsChain).Methods(http.MethodGet)
	v1.HandleFunc("/company/{symbol}", s.handleCompany).Methods(http.MethodGet)
	v1.HandleFunc("/fundamentals/{symbol}", s.handleFundamentals).Methods(http.MethodGet)
	v1.HandleFunc("/earnings/{symbol}", s.handleEarnings).Methods(http.MethodGet)
	v1.HandleFunc("/dividends/{symbol}", s.handleDividends).Methods(http.MethodGet)
	v1.HandleFunc("/splits/{symbol}", s.handleSplits).Methods(http.MethodGet)
	v1.HandleFunc("/indicators/{symbol}", s.handleIndicator).Methods(http.MethodGet)
	v1.HandleFunc("/transcripts/{symbol}", s.handleTranscript).Methods(http.MethodGet)
	v1.HandleFunc("/news", s.handleNews).Methods(http.MethodGet)
	v1.HandleFunc("/economic/events", s.handleEconomicEvents).Methods(http.MethodGet)
	v1.HandleFunc("/earnings-calendar", s.handleEarningsCalendar).Methods(http.MethodGet)
	v1.HandleFunc("/market/status", s.handleMarketStatus).Methods(http.MethodGet)
	v1.HandleFunc("/providers", s.handleProviders).Methods(http.MethodGet)
	v1.HandleFunc("/providers/status", s.handleProviderStatus).Methods(http.MethodGet)
	v1.HandleFunc("/providers/{id}", s.handleProvider).Methods(http.MethodGet)
	v1.HandleFunc("/capabilities", s.handleCapabilities).Methods(http.MethodGet)
	v1.HandleFunc("/cache", s.handleCacheStats).Methods(http.MethodGet)
	v1.HandleFunc("/cache", s.handleClearCache).Methods(http.MethodDelete)

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	go s.pruneLoop(ctx, pruneInterval)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		s.log.Info("http server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

// pruneLoop evicts stale cache entries until ctx is done.
func (s *Server) pruneLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.brain.PruneCache()
		}
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request served",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("handler panicked", zap.String("path", r.URL.Path), zap.Any("panic", rec))
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
