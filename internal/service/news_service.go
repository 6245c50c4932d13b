package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/query"
	"github.com/fact-check-board/internal/repository"
	"github.com/fact-check-board/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// newsService is the concrete implementation of NewsService
type newsService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	mu        *sync.Mutex
	now       clock
	log       zerolog.Logger
}

func newNewsService(repos *repository.Repositories, v *validation.Validator, mu *sync.Mutex, log zerolog.Logger) *newsService {
	return &newsService{
		repos:     repos,
		validator: v,
		mu:        mu,
		now:       utcNow,
		log:       log.With().Str("service", "news").Logger(),
	}
}

// SubmitNewsItem validates a draft and stores it at the head of the collection
func (s *newsService) SubmitNewsItem(ctx context.Context, draft *models.NewsDraft) (*models.NewsItem, error) {
	clean, err := s.validator.ValidateNewsDraft(draft)
	if err != nil {
		return nil, err
	}

	item := &models.NewsItem{
		ID:          uuid.New().String(),
		Topic:       clean.Topic,
		ShortDetail: clean.ShortDetail,
		FullDetail:  clean.FullDetail,
		Reporter:    clean.Reporter,
		Image:       clean.Image,
		Date:        s.now(),
		Status:      models.StatusPending,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repos.News.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}

	updated := make([]*models.NewsItem, 0, len(items)+1)
	updated = append(updated, item)
	updated = append(updated, items...)

	if err := s.repos.News.SaveAll(ctx, updated); err != nil {
		return nil, fmt.Errorf("save news: %w", err)
	}

	s.log.Info().
		Str("news_id", item.ID).
		Str("reporter", item.Reporter).
		Msg("News item submitted")

	out := *item
	return &out, nil
}

// GetNews returns a single news item or a NotFoundError
func (s *newsService) GetNews(ctx context.Context, id string) (*models.NewsItem, error) {
	item, err := s.repos.News.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	if item == nil {
		return nil, &models.NotFoundError{Resource: "news", ID: id}
	}
	return item, nil
}

// QueryNews loads the collection and runs the query pipeline over it
func (s *newsService) QueryNews(ctx context.Context, params query.NewsParams) (*query.Page[*models.NewsItem], error) {
	if err := validation.ValidatePageSize(params.PageSize); err != nil {
		return nil, err
	}

	items, err := s.repos.News.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	return query.News(items, params)
}

// Stats counts items per status; verified means not-fake
func (s *newsService) Stats(ctx context.Context) (*models.Stats, error) {
	items, err := s.repos.News.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}

	stats := &models.Stats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case models.StatusNotFake:
			stats.Verified++
		case models.StatusFake:
			stats.Fake++
		case models.StatusPending:
			stats.Pending++
		}
	}
	return stats, nil
}

// SeedIfEmpty writes the given items and comments when the news collection
// has never been stored. It reports whether anything was written.
func (s *newsService) SeedIfEmpty(ctx context.Context, items []*models.NewsItem, comments map[string][]*models.Comment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repos.News.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check news collection: %w", err)
	}
	if exists {
		return false, nil
	}

	// Seeded tallies go through the same rule as live votes
	for _, item := range items {
		item.TotalVotes = item.FakeVotes + item.NotFakeVotes
		item.Status = ComputeStatus(item.FakeVotes, item.NotFakeVotes)
	}

	if err := s.repos.Comment.SaveAll(ctx, comments); err != nil {
		return false, fmt.Errorf("seed comments: %w", err)
	}
	if err := s.repos.News.SaveAll(ctx, items); err != nil {
		return false, fmt.Errorf("seed news: %w", err)
	}

	s.log.Info().Int("news", len(items)).Int("comment_threads", len(comments)).Msg("Demo data seeded")
	return true, nil
}
