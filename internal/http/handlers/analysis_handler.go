package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/errors"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/reportstore"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// AnalysisHandler exposes the async pair: schedule a crawl, then poll its
// status until the background run finishes.
type AnalysisHandler struct {
	service *service.Crawler
	store   *reportstore.Store
	baseCtx context.Context
	log     *log.Logger
}

type AnalysisResponse struct {
	AnalysisID string              `json:"analysis_id"`
	Status     reportstore.Status  `json:"status"`
	Report     *models.CrawlReport `json:"report,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func NewAnalysisHandler(ctx context.Context, service *service.Crawler, store *reportstore.Store, log *log.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		store:   store,
		baseCtx: ctx,
		log:     log,
	}
}

// Schedule accepts the same body as the synchronous crawl endpoint, starts
// the crawl in the background and immediately returns an analysis id.
func (h *AnalysisHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var request CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.WithError(err).Error(`failed to decode request body`)
		sendError(w, `failed to decode request body`, err, http.StatusBadRequest)
		return
	}

	if err := request.Validate(); err != nil {
		h.log.WithError(err).Error(`failed to validate request body`)
		sendError(w, `failed to validate request body`, err, http.StatusBadRequest)
		return
	}

	analysis := reportstore.Analysis{
		ID:     uuid.NewString(),
		URL:    request.URL,
		Status: reportstore.StatusProcessing,
	}
	h.store.Put(analysis)

	// The crawl outlives the scheduling request, so it runs off the server
	// base context rather than r.Context().
	go func() {
		report, err := h.service.Crawl(h.baseCtx, models.CrawlRequest{
			URL:            request.URL,
			TimeoutSeconds: request.TimeoutSeconds,
			MaxSubpages:    request.MaxSubpages,
		})
		if err != nil {
			h.log.WithError(err).WithField(`analysis_id`, analysis.ID).Error(`background crawl failed`)
			analysis.Status = reportstore.StatusFailed
			analysis.Error = err.Error()
		} else {
			analysis.Status = reportstore.StatusCompleted
			analysis.Report = report
		}
		h.store.Put(analysis)
	}()

	writeJSON(w, http.StatusAccepted, AnalysisResponse{
		AnalysisID: analysis.ID,
		Status:     analysis.Status,
	})
}

// Poll returns the current state of a scheduled analysis.
func (h *AnalysisHandler) Poll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	analysis, ok := h.store.Get(id)
	if !ok {
		sendError(w, `unknown analysis id`, errors.New(`analysis not found: `+id), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, AnalysisResponse{
		AnalysisID: analysis.ID,
		Status:     analysis.Status,
		Report:     analysis.Report,
		Error:      analysis.Error,
	})
}
