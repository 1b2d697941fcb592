package http

import (
	"context"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/adaptors"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/application/config"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/http/handlers"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/http/middleware"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/reportstore"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/service"
)

func initRoutes(ctx context.Context, r *Router, appCfg *config.AppConfig) error {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))

	crawler := service.NewCrawler(r.log, adaptors.NewWebClient(r.log), service.CrawlerOptions{
		HomepageTimeout: appCfg.Crawl.HomepageTimeout,
		SubpageTimeout:  appCfg.Crawl.SubpageTimeout,
		MaxSubpages:     appCfg.Crawl.MaxSubpages,
		DefaultLanguage: appCfg.Crawl.DefaultLanguage,
	})

	store, err := reportstore.NewStore(appCfg.AnalysisStoreSize)
	if err != nil {
		return err
	}

	analysisHandler := handlers.NewAnalysisHandler(ctx, crawler, store, r.log)

	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler().Handle)
	r.httpRouter.Post("/crawl", handlers.NewCrawlHandler(crawler, r.log).Handle)
	r.httpRouter.Post("/analyses", analysisHandler.Schedule)
	r.httpRouter.Get("/analyses/{id}", analysisHandler.Poll)
	return nil
}
