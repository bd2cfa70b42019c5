// Package server exposes the scan engine over a small JSON HTTP API. The
// engine itself stays transport-agnostic; this is a thin collaborator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/config"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner"
	"github.com/rs/zerolog/log"
)

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server configuration. WriteTimeout is
// generous because a scan runs synchronously within the request.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            8181,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    5 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves scan requests over HTTP.
type Server struct {
	config     Config
	scanOpts   config.ScanOptions
	httpServer *http.Server
	listener   net.Listener
}

// New creates a server that runs scans with the given options.
func New(cfg Config, scanOpts config.ScanOptions) *Server {
	return &Server{config: cfg, scanOpts: scanOpts}
}

// Start binds the listener and serves in a background goroutine.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/scan", s.handleScan)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.loggingMiddleware(mux),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	log.Info().Str("addr", listener.Addr().String()).Msg("Server listening")
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()
	return nil
}

// Stop drains in-flight requests within the shutdown timeout.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address, useful when Port was 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

type scanRequest struct {
	Directory string `json:"directory"`
	URL       string `json:"url"`
}

type scanResponse struct {
	Success bool                `json:"success"`
	Report  *scanner.ScanReport `json:"report,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, scanResponse{Error: "invalid JSON body"})
		return
	}
	if (req.Directory == "") == (req.URL == "") {
		writeJSON(w, http.StatusBadRequest, scanResponse{Error: "provide exactly one of directory or url"})
		return
	}

	var report *scanner.ScanReport
	var err error
	if req.Directory != "" {
		report, err = scanner.ScanDirectory(req.Directory, s.scanOpts)
	} else {
		report, err = scanner.ScanURL(req.URL, s.scanOpts)
	}
	if err != nil {
		writeJSON(w, statusForScanError(err), scanResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, scanResponse{Success: true, Report: report})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusForScanError(err error) int {
	var fetchErr *scanner.FetchError
	switch {
	case errors.Is(err, scanner.ErrInvalidDirectory), errors.Is(err, scanner.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed encoding response")
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
