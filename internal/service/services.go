package service

import (
	"context"
	"sync"
	"time"

	"github.com/fact-check-board/internal/events"
	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/query"
	"github.com/fact-check-board/internal/repository"
	"github.com/fact-check-board/internal/validation"
	"github.com/rs/zerolog"
)

// NewsService defines the interface for news submission and listing
type NewsService interface {
	SubmitNewsItem(ctx context.Context, draft *models.NewsDraft) (*models.NewsItem, error)
	GetNews(ctx context.Context, id string) (*models.NewsItem, error)
	QueryNews(ctx context.Context, params query.NewsParams) (*query.Page[*models.NewsItem], error)
	Stats(ctx context.Context) (*models.Stats, error)
	SeedIfEmpty(ctx context.Context, items []*models.NewsItem, comments map[string][]*models.Comment) (bool, error)
}

// VoteService defines the interface for the vote and status engine
type VoteService interface {
	RegisterVote(ctx context.Context, clientID, newsID string, choice models.VoteChoice, comment *models.CommentDraft) (*models.NewsItem, error)
	CastVote(ctx context.Context, clientID, newsID string, choice models.VoteChoice, comment *models.CommentDraft) (*models.NewsItem, error)
	HasVoted(ctx context.Context, clientID, newsID string) (bool, error)
}

// CommentService defines the interface for comment listing
type CommentService interface {
	QueryComments(ctx context.Context, newsID string, page, pageSize int) (*query.Page[*models.Comment], error)
}

// Services holds all service interfaces
type Services struct {
	News    NewsService
	Vote    VoteService
	Comment CommentService
}

// NewServices creates all services. Writers share one mutex so that a
// submission and a vote never interleave their read-modify-write cycles.
func NewServices(repos *repository.Repositories, publisher events.Publisher, log zerolog.Logger) *Services {
	mu := &sync.Mutex{}
	v := validation.NewValidator()

	return &Services{
		News:    newNewsService(repos, v, mu, log),
		Vote:    newVoteService(repos, v, publisher, mu, log),
		Comment: newCommentService(repos, log),
	}
}

// clock is swapped in tests
type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
