package adaptors

import (
	"context"

	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"
)

// WebClient performs a single bounded HTTP GET. Failures are returned as
// *models.FetchError; there are no retries.
type WebClient interface {
	Fetch(ctx context.Context, url string) (*models.PageFetchResult, error)
}
