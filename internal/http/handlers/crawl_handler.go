package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/errors"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/service"

	log "github.com/sirupsen/logrus"
)

type CrawlHandler struct {
	service *service.Crawler
	log     *log.Logger
}

type CrawlRequest struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxSubpages    int    `json:"max_subpages,omitempty"`
}

func (r *CrawlRequest) Validate() error {
	if r.URL == "" {
		return errors.New("url is empty")
	}

	// A missing scheme is allowed; the crawler prefixes https://.
	if strings.Contains(r.URL, "://") {
		parsed, err := url.Parse(r.URL)
		if err != nil {
			return errors.Wrap(err, `failed to parse url`)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.New("url scheme must be http or https")
		}
	}

	if r.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds is negative")
	}

	return nil
}

func NewCrawlHandler(service *service.Crawler, log *log.Logger) *CrawlHandler {
	return &CrawlHandler{
		service: service,
		log:     log,
	}
}

// Handle runs one synchronous crawl and writes the report as JSON. Fetch
// failures map to 502 with the typed kind; everything else unexpected is a
// 500.
func (h *CrawlHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.Debug(`crawl handler called`)

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

	report, err := h.service.Crawl(r.Context(), models.CrawlRequest{
		URL:            request.URL,
		TimeoutSeconds: request.TimeoutSeconds,
		MaxSubpages:    request.MaxSubpages,
	})
	if err != nil {
		var fetchErr *models.FetchError
		if errors.As(err, &fetchErr) {
			sendFetchError(w, fetchErr)
			return
		}
		sendError(w, `failed to crawl web site`, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
