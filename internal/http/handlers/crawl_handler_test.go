package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/reportstore"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// stubWebClient serves canned pages per URL and a typed error otherwise.
type stubWebClient struct {
	pages map[string]string
}

func (s *stubWebClient) Fetch(_ context.Context, url string) (*models.PageFetchResult, error) {
	body, ok := s.pages[url]
	if !ok {
		return nil, &models.FetchError{Kind: models.FetchTimeout, URL: url}
	}
	return &models.PageFetchResult{
		FinalURL:       url,
		StatusCode:     200,
		Body:           []byte(body),
		ResponseTimeMS: 42,
	}, nil
}

func newTestCrawler(pages map[string]string) *service.Crawler {
	logger := log.New()
	logger.SetLevel(log.ErrorLevel)
	return service.NewCrawler(logger, &stubWebClient{pages: pages}, service.CrawlerOptions{
		HomepageTimeout: time.Second,
		SubpageTimeout:  time.Second,
		MaxSubpages:     3,
		DefaultLanguage: "de",
	})
}

const testPage = `<html lang="de"><head><title>Hotel Test</title></head>
<body><p>10 Zimmer</p></body></html>`

func TestCrawlHandler(t *testing.T) {
	crawler := newTestCrawler(map[string]string{
		"https://hotel.example": testPage,
	})
	handler := NewCrawlHandler(crawler, log.New())

	cases := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name:     "success",
			body:     `{"url": "https://hotel.example", "timeout_seconds": 5}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "empty url",
			body:     `{"url": ""}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad scheme",
			body:     `{"url": "ftp://hotel.example"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			body:     `{"url": `,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unreachable site",
			body:     `{"url": "https://down.example"}`,
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/crawl", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			handler.Handle(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)

			if tc.wantCode == http.StatusOK {
				var report models.CrawlReport
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
				assert.Equal(t, "Hotel Test", report.Title)
				if assert.NotNil(t, report.RoomCount.Value) {
					assert.Equal(t, 10, *report.RoomCount.Value)
				}
			}

			if tc.wantCode == http.StatusBadGateway {
				var errResp ErrorResponse
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, "fetch_failed", errResp.Error)
				assert.Equal(t, models.FetchTimeout, errResp.FetchKind)
			}
		})
	}
}

func TestAnalysisHandlerScheduleAndPoll(t *testing.T) {
	crawler := newTestCrawler(map[string]string{
		"https://hotel.example": testPage,
	})
	store, err := reportstore.NewStore(8)
	assert.NoError(t, err)
	handler := NewAnalysisHandler(context.Background(), crawler, store, log.New())

	router := chi.NewRouter()
	router.Post("/analyses", handler.Schedule)
	router.Get("/analyses/{id}", handler.Poll)

	// schedule
	req := httptest.NewRequest(http.MethodPost, "/analyses", strings.NewReader(`{"url": "https://hotel.example"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	var scheduled AnalysisResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&scheduled))
	assert.NotEmpty(t, scheduled.AnalysisID)
	assert.Equal(t, reportstore.StatusProcessing, scheduled.Status)

	// poll until the background crawl lands
	assert.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/analyses/"+scheduled.AnalysisID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			return false
		}
		var polled AnalysisResponse
		if err := json.NewDecoder(rec.Body).Decode(&polled); err != nil {
			return false
		}
		return polled.Status == reportstore.StatusCompleted && polled.Report != nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestAnalysisHandlerUnknownID(t *testing.T) {
	crawler := newTestCrawler(nil)
	store, err := reportstore.NewStore(8)
	assert.NoError(t, err)
	handler := NewAnalysisHandler(context.Background(), crawler, store, log.New())

	router := chi.NewRouter()
	router.Get("/analyses/{id}", handler.Poll)

	req := httptest.NewRequest(http.MethodGet, "/analyses/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
