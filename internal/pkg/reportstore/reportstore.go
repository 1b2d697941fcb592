package reportstore

import (
	"github.com/rb2763-ux/chatproai-analyzer-v2/internal/domain/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Status of a scheduled analysis.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Analysis is one scheduled crawl and, once finished, its report or error.
type Analysis struct {
	ID     string
	URL    string
	Status Status
	Report *models.CrawlReport
	Error  string
}

// Store keeps recent analyses in a bounded LRU so long-running deployments
// do not grow memory with every scheduled crawl. Evicted entries simply
// become unknown ids to pollers.
type Store struct {
	cache *lru.Cache[string, Analysis]
}

func NewStore(size int) (*Store, error) {
	cache, err := lru.New[string, Analysis](size)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

func (s *Store) Put(analysis Analysis) {
	s.cache.Add(analysis.ID, analysis)
}

func (s *Store) Get(id string) (Analysis, bool) {
	return s.cache.Get(id)
}

func (s *Store) Len() int {
	return s.cache.Len()
}
