package service

import (
	"context"
	"sync"

	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/entity"
	"tradepulse/pkg/logger"
)

// NewsService is the in-memory store of the current enriched article
// list. It owns the active selector, runs the enrichment pipeline on
// every effective selection change, and replaces the list wholesale when
// a batch settles. Batches are tagged with a sequence number so a slow
// batch that settles after a newer one was issued cannot overwrite
// fresher state.
type NewsService interface {
	Snapshot() dto.NewsState
	SetSelector(ctx context.Context, sel entity.Selector) dto.NewsState
	Refresh(ctx context.Context) dto.NewsState
}

type newsService struct {
	enricher NewsEnrichmentService
	logger   *logger.Logger

	mu       sync.Mutex
	articles []entity.NewsArticle
	loading  bool
	selector entity.Selector
	seq      uint64
}

// NewNewsService creates a news store with the default selector and an
// empty article list.
func NewNewsService(enricher NewsEnrichmentService, log *logger.Logger) NewsService {
	return &newsService{
		enricher: enricher,
		logger:   log,
		articles: []entity.NewsArticle{},
		selector: entity.DefaultSelector(),
	}
}

// Snapshot returns the current store state.
func (s *newsService) Snapshot() dto.NewsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetSelector replaces the selector and refetches. A call that does not
// change the effective selection criteria returns the current state
// without refetching.
func (s *newsService) SetSelector(ctx context.Context, sel entity.Selector) dto.NewsState {
	s.mu.Lock()
	if sel == s.selector && !s.loading && len(s.articles) > 0 {
		state := s.snapshotLocked()
		s.mu.Unlock()
		return state
	}
	s.selector = sel
	batch := s.beginBatchLocked()
	s.mu.Unlock()

	return s.runBatch(ctx, sel, batch)
}

// Refresh refetches with the current selector.
func (s *newsService) Refresh(ctx context.Context) dto.NewsState {
	s.mu.Lock()
	sel := s.selector
	batch := s.beginBatchLocked()
	s.mu.Unlock()

	return s.runBatch(ctx, sel, batch)
}

func (s *newsService) beginBatchLocked() uint64 {
	s.loading = true
	s.seq++
	return s.seq
}

func (s *newsService) runBatch(ctx context.Context, sel entity.Selector, batch uint64) dto.NewsState {
	articles := s.enricher.Enrich(ctx, sel)

	s.mu.Lock()
	defer s.mu.Unlock()

	if batch != s.seq {
		// A newer batch was issued while this one was in flight; its
		// result wins regardless of settle order.
		s.logger.Debug("Discarding stale news batch",
			logger.IntField("batch", int(batch)),
			logger.IntField("latest", int(s.seq)),
		)
		return s.snapshotLocked()
	}

	s.articles = articles
	s.loading = false
	return s.snapshotLocked()
}

func (s *newsService) snapshotLocked() dto.NewsState {
	articles := make([]entity.NewsArticle, len(s.articles))
	copy(articles, s.articles)
	return dto.NewsState{
		Articles:  articles,
		IsLoading: s.loading,
		Category:  s.selector.Category,
		Query:     s.selector.Query,
	}
}
