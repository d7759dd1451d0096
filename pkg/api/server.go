package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/simon/pkg/api/handlers"
	"github.com/cbodonnell/simon/pkg/api/middleware"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/repositories"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port       int
	TLS        *TLSConfig
	Repository repositories.Repository
	// WSHandler serves game sessions on /ws. Optional.
	WSHandler http.Handler
	// AllowOrigin is the value of the Access-Control-Allow-Origin header.
	AllowOrigin string
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter returns the handler of every API route.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())
	r.Use(mux.CORSMethodMiddleware(r))
	r.Use(middleware.NewCORSMiddleware(opts.AllowOrigin))

	r.HandleFunc("/healthz", handlers.HandleHealthz()).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/results", handlers.HandleListResults(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/results", handlers.HandleCreateResult(opts.Repository)).Methods(http.MethodPost)
	r.HandleFunc("/results/{resultID}", handlers.HandleGetResult(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/stats", handlers.HandleGetStats(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	if opts.WSHandler != nil {
		r.Handle("/ws", opts.WSHandler).Methods(http.MethodGet)
	}

	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
