package search

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/retail-cloud/pricedex/internal/domain"
	"github.com/retail-cloud/pricedex/internal/fuzzy"
	"github.com/retail-cloud/pricedex/internal/logger"
	"github.com/retail-cloud/pricedex/internal/metrics"
)

// Config tunes query behavior.
type Config struct {
	Fuzzy        fuzzy.Config
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Fuzzy:        fuzzy.DefaultConfig(),
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// Result pairs a matched record with its relevance score.
type Result struct {
	Record domain.Record
	Score  float64
}

// cacheEntry is one built generation of the in-memory search structures.
// builtAt carries the upload timestamp of the index blob the entry was built
// from, which is what staleness is judged against.
type cacheEntry struct {
	matcher *fuzzy.Matcher
	corpus  []domain.Record
	builtAt time.Time
}

// Service answers fuzzy product queries against the most recently ingested
// price list. It keeps a single cached generation of the parsed index and
// corpus, rebuilt whenever the stored index blob is newer than the cached
// one. Concurrent requests that observe a stale cache may rebuild in
// parallel; every rebuild stores a correct entry, so the race only costs
// duplicate work, never wrong results.
type Service struct {
	repo  Repository
	cfg   Config
	cache atomic.Pointer[cacheEntry]
}

// New creates a search service. Zero config fields fall back to defaults.
func New(repo Repository, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	return &Service{repo: repo, cfg: cfg}
}

// Search returns up to limit records matching the query, ranked best first.
// A blank query returns no results without touching storage. limit <= 0
// falls back to the configured default.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	entry, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	matches := entry.matcher.Search(query, limit)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		if m.Index >= len(entry.corpus) {
			// Index and corpus are written as a pair but not atomically; a
			// reader landing between the two uploads can see them disagree.
			// The next request after both blobs settle rebuilds cleanly.
			continue
		}
		results = append(results, Result{Record: entry.corpus[m.Index], Score: m.Score})
	}
	return results, nil
}

// current returns the cached entry if it is as fresh as the stored index,
// rebuilding otherwise.
func (s *Service) current(ctx context.Context) (*cacheEntry, error) {
	uploadedAt, err := s.repo.StatIndex(ctx)
	if err != nil {
		return nil, err
	}
	if cached := s.cache.Load(); cached != nil && !cached.builtAt.Before(uploadedAt) {
		return cached, nil
	}
	return s.rebuild(ctx)
}

func (s *Service) rebuild(ctx context.Context) (*cacheEntry, error) {
	data, uploadedAt, err := s.repo.GetIndex(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := fuzzy.ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexBuild, err)
	}
	corpus, err := s.repo.GetCorpus(ctx)
	if err != nil {
		return nil, err
	}

	entry := &cacheEntry{
		matcher: fuzzy.NewMatcher(idx, s.cfg.Fuzzy),
		corpus:  corpus,
		builtAt: uploadedAt,
	}
	s.cache.Store(entry)

	metrics.IndexRebuildsTotal.Inc()
	metrics.IndexDocuments.Set(float64(idx.Len()))
	logger.FromContext(ctx).Info("search index rebuilt",
		zap.Int("records", idx.Len()),
		zap.Time("uploaded_at", uploadedAt),
	)
	return entry, nil
}
