package service

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/adaptors"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/errors"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/metrics"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/pkg/worker_pool"
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/service/extract"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// defaultCandidatePaths is the ordered fallback list searched for a room
// count when the homepage has none. List position is priority.
var defaultCandidatePaths = []string{
	"/zimmer",
	"/zimmer-suiten",
	"/rooms",
	"/hotel",
	"/ueber-uns",
	"/about",
}

// CrawlerOptions tunes one Crawler instance. Zero fields fall back to the
// defaults below.
type CrawlerOptions struct {
	HomepageTimeout time.Duration
	SubpageTimeout  time.Duration
	MaxSubpages     int
	DefaultLanguage string
	CandidatePaths  []string
}

func (o *CrawlerOptions) applyDefaults() {
	if o.HomepageTimeout <= 0 {
		o.HomepageTimeout = 30 * time.Second
	}
	if o.SubpageTimeout <= 0 {
		o.SubpageTimeout = 10 * time.Second
	}
	if o.MaxSubpages <= 0 {
		o.MaxSubpages = 3
	}
	if o.DefaultLanguage == "" {
		o.DefaultLanguage = "de"
	}
	if len(o.CandidatePaths) == 0 {
		o.CandidatePaths = defaultCandidatePaths
	}
}

type Crawler struct {
	log       *log.Logger
	webClient adaptors.WebClient
	opts      CrawlerOptions
}

func NewCrawler(log *log.Logger, webClient adaptors.WebClient, opts CrawlerOptions) *Crawler {
	opts.applyDefaults()
	return &Crawler{
		log:       log,
		webClient: webClient,
		opts:      opts,
	}
}

// Crawl fetches the homepage of req.URL, runs every extractor against it and
// falls back to the candidate subpages when no room count was found. A
// homepage fetch failure aborts the crawl and surfaces the *models.FetchError
// unchanged; subpage failures are swallowed. The report is assembled once
// and not mutated afterwards.
func (c *Crawler) Crawl(ctx context.Context, req models.CrawlRequest) (*models.CrawlReport, error) {
	c.log.WithField(`url`, req.URL).Debug(`crawl started`)
	start := time.Now()

	homepageTimeout := c.opts.HomepageTimeout
	if req.TimeoutSeconds > 0 {
		homepageTimeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	maxSubpages := c.opts.MaxSubpages
	if req.MaxSubpages > 0 {
		maxSubpages = req.MaxSubpages
	}
	if maxSubpages > len(c.opts.CandidatePaths) {
		maxSubpages = len(c.opts.CandidatePaths)
	}

	// Only per-fetch timeouts existed historically; the overall deadline
	// bounds the worst case of cap x subpage timeout on top of the homepage.
	ctx, cancel := context.WithTimeout(ctx, homepageTimeout+time.Duration(maxSubpages)*c.opts.SubpageTimeout)
	defer cancel()

	targetURL := normalizeURL(req.URL)

	fetchCtx, fetchCancel := context.WithTimeout(ctx, homepageTimeout)
	page, err := c.webClient.Fetch(fetchCtx, targetURL)
	fetchCancel()
	if err != nil {
		metrics.CrawlsTotal.WithLabelValues(`fetch_failed`).Inc()
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(page.Body))
	if err != nil {
		metrics.CrawlsTotal.WithLabelValues(`internal_error`).Inc()
		return nil, errors.Wrap(err, `failed to parse homepage markup`)
	}

	report := &models.CrawlReport{
		URL:            targetURL,
		FinalURL:       page.FinalURL,
		StatusCode:     page.StatusCode,
		ResponseTimeMS: page.ResponseTimeMS,
	}
	var mux sync.Mutex

	pool := worker_pool.NewWorkerPool(ctx, 3, false, c.log)
	rawHTML := string(page.Body)
	text := extract.VisibleText(doc)

	wg := sync.WaitGroup{}
	wg.Add(5)

	// A rejected submit (pool shutting down on context cancel) runs the
	// extractor inline; every task must fire exactly once or wg.Wait
	// blocks forever.
	submit := func(id string, task worker_pool.TaskFunc) {
		if pool.Submit(id, task) != nil {
			task(ctx)
		}
	}

	submit(`pageMeta`, func(ctx context.Context) (any, error) {
		defer wg.Done()
		title := extract.Title(doc)
		description := extract.MetaDescription(doc)
		languages := extract.Languages(doc, c.opts.DefaultLanguage)
		mobile := extract.MobileResponsive(doc)
		pages := extract.PagesCount(doc)

		mux.Lock()
		defer mux.Unlock()
		report.Title = title
		report.MetaDescription = description
		report.Languages = languages
		report.MobileResponsive = mobile
		report.PagesCount = pages
		return nil, nil
	})

	submit(`leadForms`, func(ctx context.Context) (any, error) {
		defer wg.Done()
		forms := extract.LeadForms(doc)
		mux.Lock()
		defer mux.Unlock()
		report.LeadForms = forms
		return forms, nil
	})

	submit(`contacts`, func(ctx context.Context) (any, error) {
		defer wg.Done()
		contacts := extract.Contacts(rawHTML, doc)
		mux.Lock()
		defer mux.Unlock()
		report.ContactInfo = contacts
		return contacts, nil
	})

	submit(`chatbot`, func(ctx context.Context) (any, error) {
		defer wg.Done()
		detection := extract.DetectChatbot(doc)
		mux.Lock()
		defer mux.Unlock()
		report.Chatbot = detection
		return detection, nil
	})

	submit(`roomCount`, func(ctx context.Context) (any, error) {
		defer wg.Done()
		roomCount := extract.ExtractRoomCount(text)
		if roomCount.Value != nil {
			roomCount.SourcePage = page.FinalURL
		}
		mux.Lock()
		defer mux.Unlock()
		report.RoomCount = roomCount
		return roomCount, nil
	})

	wg.Wait()
	pool.Stop()

	if report.RoomCount.Value == nil {
		report.RoomCount = c.searchSubpagesForRoomCount(ctx, page.FinalURL, maxSubpages)
	}

	if report.Chatbot.Detected {
		metrics.ChatbotDetectedTotal.WithLabelValues(report.Chatbot.Vendor).Inc()
	}
	metrics.CrawlsTotal.WithLabelValues(`completed`).Inc()
	metrics.CrawlDuration.Observe(time.Since(start).Seconds())

	c.log.WithField(`url`, req.URL).Debug(`crawl ended`)
	return report, nil
}

// searchSubpagesForRoomCount fetches up to max candidate subpages
// concurrently and runs only the room-count extractor on each. Every result
// is buffered and the winner picked by candidate-list order, never arrival
// order, so repeated crawls stay deterministic. Fetch and parse failures on
// subpages are swallowed.
func (c *Crawler) searchSubpagesForRoomCount(ctx context.Context, baseURL string, max int) models.RoomCountResult {
	base, err := url.Parse(baseURL)
	if err != nil {
		c.log.WithError(err).Error(`failed to parse base url for subpage search`)
		return models.RoomCountResult{}
	}

	paths := c.opts.CandidatePaths
	if len(paths) > max {
		paths = paths[:max]
	}

	results := make([]models.RoomCountResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		subURL := base.ResolveReference(&url.URL{Path: path}).String()
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, c.opts.SubpageTimeout)
			defer cancel()

			page, err := c.webClient.Fetch(fetchCtx, subURL)
			if err != nil {
				c.log.WithError(err).WithField(`url`, subURL).Debug(`subpage fetch skipped`)
				metrics.SubpageFetchesTotal.WithLabelValues(`error`).Inc()
				return nil
			}

			doc, err := html.Parse(bytes.NewReader(page.Body))
			if err != nil {
				metrics.SubpageFetchesTotal.WithLabelValues(`error`).Inc()
				return nil
			}

			roomCount := extract.ExtractRoomCount(extract.VisibleText(doc))
			if roomCount.Value != nil {
				roomCount.SourcePage = page.FinalURL
				metrics.SubpageFetchesTotal.WithLabelValues(`hit`).Inc()
			} else {
				metrics.SubpageFetchesTotal.WithLabelValues(`miss`).Inc()
			}
			results[i] = roomCount
			return nil
		})
	}
	g.Wait()

	for i := range results {
		if results[i].Value != nil {
			return results[i]
		}
	}
	return models.RoomCountResult{}
}

func normalizeURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}
