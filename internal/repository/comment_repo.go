package repository

import (
	"context"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/store"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	store store.Store
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(s store.Store) CommentRepository {
	return &commentRepo{store: s}
}

// All returns comments grouped by news ID
func (r *commentRepo) All(ctx context.Context) (map[string][]*models.Comment, error) {
	comments := map[string][]*models.Comment{}
	if _, err := load(ctx, r.store, store.Comments, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = map[string][]*models.Comment{}
	}
	return comments, nil
}

// ListByNews returns the comments of one news item in insertion order
func (r *commentRepo) ListByNews(ctx context.Context, newsID string) ([]*models.Comment, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	if list, ok := all[newsID]; ok {
		return list, nil
	}
	return []*models.Comment{}, nil
}

// SaveAll replaces the whole comments collection
func (r *commentRepo) SaveAll(ctx context.Context, comments map[string][]*models.Comment) error {
	if comments == nil {
		comments = map[string][]*models.Comment{}
	}
	return save(ctx, r.store, store.Comments, comments)
}
