package http

import (
	"context"
	"net/http"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/errors"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/metrics"
	log "github.com/sirupsen/logrus"
)

// MetricsServer exposes the crawl metrics registry on its own listener so
// Prometheus scrapes never compete with long-running crawl requests.
type MetricsServer struct {
	config *HTTPServerConfig
	server *http.Server
	log    *log.Logger
}

func NewMetricsServer(host string, config *HTTPServerConfig, log *log.Logger) *MetricsServer {
	reg := metrics.MetricsRegister()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &MetricsServer{
		server: &http.Server{
			Addr:              host,
			Handler:           mux,
			ReadHeaderTimeout: config.Timeouts.ReadHeader,
		},
		config: config,
		log:    log,
	}
}

func (m *MetricsServer) Start() error {
	m.log.Info("metrics server starting on ", m.server.Addr)
	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (m *MetricsServer) Stop() error {
	if m.server == nil {
		return errors.New("server is not initialized")
	}
	m.log.Info("shutting down metrics server...")

	ctx, cancel := context.WithTimeout(context.Background(), m.config.Timeouts.ShutdownWait)
	defer cancel()

	if err := m.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, `failed to shutdown metrics server`)
	}

	m.log.Info("metrics server exiting")
	return nil
}
