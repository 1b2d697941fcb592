package http

import (
	"context"
	"net/http"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// HTTPServer serves the crawl API routes. The write timeout must cover a
// full worst-case crawl (homepage plus capped subpage fallback), which is
// why it is configured much higher than the read timeouts.
type HTTPServer struct {
	config *HTTPServerConfig
	server *http.Server
	log    *logrus.Logger
}

func NewHttpServer(config *HTTPServerConfig, router *chi.Mux, log *logrus.Logger) *HTTPServer {
	return &HTTPServer{
		config: config,
		server: &http.Server{
			Addr:              config.Host,
			Handler:           router,
			ReadTimeout:       config.Timeouts.Read,
			ReadHeaderTimeout: config.Timeouts.ReadHeader,
			WriteTimeout:      config.Timeouts.Write,
			IdleTimeout:       config.Timeouts.Idle,
		},
		log: log,
	}
}

func (s *HTTPServer) Start() error {
	s.log.Info("crawl API server starting on ", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Stop() error {
	if s.server == nil {
		return errors.New("server is not initialized")
	}
	s.log.Info("shutting down crawl API server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeouts.ShutdownWait)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, `failed to shutdown crawl API server`)
	}

	s.log.Info("crawl API server exiting")
	return nil
}
