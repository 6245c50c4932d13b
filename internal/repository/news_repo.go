package repository

import (
	"context"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/store"
)

// newsRepo is the concrete implementation of NewsRepository
type newsRepo struct {
	store store.Store
}

// NewNewsRepo creates a new news repository
func NewNewsRepo(s store.Store) NewsRepository {
	return &newsRepo{store: s}
}

// List returns every news item in stored order (most recent submission first)
func (r *newsRepo) List(ctx context.Context) ([]*models.NewsItem, error) {
	items := []*models.NewsItem{}
	if _, err := load(ctx, r.store, store.News, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID retrieves a news item by ID, returning nil when it does not exist
func (r *newsRepo) GetByID(ctx context.Context, id string) (*models.NewsItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

// SaveAll replaces the whole news collection
func (r *newsRepo) SaveAll(ctx context.Context, items []*models.NewsItem) error {
	if items == nil {
		items = []*models.NewsItem{}
	}
	return save(ctx, r.store, store.News, items)
}

// Exists reports whether the news collection has ever been written
func (r *newsRepo) Exists(ctx context.Context) (bool, error) {
	blob, err := r.store.Get(ctx, store.News)
	if err != nil {
		return false, err
	}
	return blob != nil, nil
}
