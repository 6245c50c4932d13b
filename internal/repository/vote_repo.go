package repository

import (
	"context"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/store"
)

// voteRepo is the concrete implementation of VoteRepository
type voteRepo struct {
	store store.Store
}

// NewVoteRepo creates a new vote record repository
func NewVoteRepo(s store.Store) VoteRepository {
	return &voteRepo{store: s}
}

// Get returns the vote record of a client, empty when the client never voted
func (r *voteRepo) Get(ctx context.Context, clientID string) (models.UserVotes, error) {
	votes := models.UserVotes{}
	if _, err := load(ctx, r.store, store.VotesFor(clientID), &votes); err != nil {
		return nil, err
	}
	if votes == nil {
		votes = models.UserVotes{}
	}
	return votes, nil
}

// Save replaces the vote record of a client
func (r *voteRepo) Save(ctx context.Context, clientID string, votes models.UserVotes) error {
	if votes == nil {
		votes = models.UserVotes{}
	}
	return save(ctx, r.store, store.VotesFor(clientID), votes)
}
