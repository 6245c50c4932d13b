package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/store"
)

// NewsRepository defines the interface for news data operations
type NewsRepository interface {
	List(ctx context.Context) ([]*models.NewsItem, error)
	GetByID(ctx context.Context, id string) (*models.NewsItem, error)
	SaveAll(ctx context.Context, items []*models.NewsItem) error
	Exists(ctx context.Context) (bool, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	All(ctx context.Context) (map[string][]*models.Comment, error)
	ListByNews(ctx context.Context, newsID string) ([]*models.Comment, error)
	SaveAll(ctx context.Context, comments map[string][]*models.Comment) error
}

// VoteRepository defines the interface for per-client vote records
type VoteRepository interface {
	Get(ctx context.Context, clientID string) (models.UserVotes, error)
	Save(ctx context.Context, clientID string, votes models.UserVotes) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	News    NewsRepository
	Comment CommentRepository
	Vote    VoteRepository
}

// New creates all repositories on top of the given store
func New(s store.Store) *Repositories {
	return &Repositories{
		News:    NewNewsRepo(s),
		Comment: NewCommentRepo(s),
		Vote:    NewVoteRepo(s),
	}
}

// load decodes the blob under c into dst; an absent collection leaves dst untouched
func load(ctx context.Context, s store.Store, c store.Collection, dst interface{}) (bool, error) {
	blob, err := s.Get(ctx, c)
	if err != nil {
		return false, err
	}
	if blob == nil {
		return false, nil
	}
	// Not wrapped: bad stored data is a server fault, not a caller's validation error
	if err := json.Unmarshal(blob, dst); err != nil {
		return false, fmt.Errorf("decode collection %s: %v", c, err)
	}
	return true, nil
}

func save(ctx context.Context, s store.Store, c store.Collection, v interface{}) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c, err)
	}
	return s.Put(ctx, c, blob)
}
