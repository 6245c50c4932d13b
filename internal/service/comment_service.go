package service

import (
	"context"
	"fmt"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/query"
	"github.com/fact-check-board/internal/repository"
	"github.com/fact-check-board/internal/validation"
	"github.com/rs/zerolog"
)

type commentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) *commentService {
	return &commentService{
		repos: repos,
		log:   log.With().Str("service", "comment").Logger(),
	}
}

// QueryComments pages through the comments of one news item in the order
// they were written
func (s *commentService) QueryComments(ctx context.Context, newsID string, page, pageSize int) (*query.Page[*models.Comment], error) {
	if err := validation.ValidatePageSize(pageSize); err != nil {
		return nil, err
	}

	item, err := s.repos.News.GetByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	if item == nil {
		return nil, &models.NotFoundError{Resource: "news", ID: newsID}
	}

	comments, err := s.repos.Comment.ListByNews(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return query.Paginate(comments, page, pageSize)
}
