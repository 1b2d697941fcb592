package adaptors

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) ChatProAI-Analyzer/2.0"

type WebClient struct {
	client *http.Client
	log    *log.Logger
}

func NewWebClient(log *log.Logger) *WebClient {
	rTripper := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, http.DefaultTransport))

	return &WebClient{
		client: &http.Client{
			Transport: rTripper,
		},
		log: log,
	}
}

// Fetch performs one GET with the deadline carried by ctx, following
// redirects. It returns the post-redirect URL, status code, raw body and
// elapsed wall time, or a *models.FetchError classifying the failure.
// A status >= 400 is reported as an http_error, not a result.
func (w *WebClient) Fetch(ctx context.Context, url string) (*models.PageFetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		w.log.WithError(err).Error(`failed to create request`)
		return nil, &models.FetchError{Kind: models.FetchUnknown, URL: url, Err: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.8,en-US,en;q=0.5")

	start := time.Now()
	resp, err := w.client.Do(req)
	if err != nil {
		fetchErr := classify(url, err)
		w.log.WithError(err).WithField(`kind`, fetchErr.Kind).Error(`fetch failed`)
		metrics.HTTPClientErrorsTotal.WithLabelValues(http.MethodGet, string(fetchErr.Kind)).Inc()
		return nil, fetchErr
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		w.log.Errorf(`fetch of %s returned status %d`, url, resp.StatusCode)
		metrics.HTTPClientErrorsTotal.WithLabelValues(http.MethodGet, string(models.FetchHTTPError)).Inc()
		return nil, &models.FetchError{Kind: models.FetchHTTPError, StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		w.log.Errorf(`failed to read response body. error: %v`, err)
		return nil, classify(url, err)
	}

	return &models.PageFetchResult{
		FinalURL:       resp.Request.URL.String(),
		StatusCode:     resp.StatusCode,
		Body:           body,
		ResponseTimeMS: time.Since(start).Milliseconds(),
	}, nil
}

func classify(url string, err error) *models.FetchError {
	fe := &models.FetchError{Kind: models.FetchUnknown, URL: url, Err: err}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fe.Kind = models.FetchTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		fe.Kind = models.FetchTimeout
	default:
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			fe.Kind = models.FetchConnection
		}
	}
	return fe
}
