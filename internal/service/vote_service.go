package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/fact-check-board/internal/events"
	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/repository"
	"github.com/fact-check-board/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// voteService is the concrete implementation of VoteService
type voteService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	publisher events.Publisher
	mu        *sync.Mutex
	now       clock
	log       zerolog.Logger
}

func newVoteService(repos *repository.Repositories, v *validation.Validator, publisher events.Publisher, mu *sync.Mutex, log zerolog.Logger) *voteService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &voteService{
		repos:     repos,
		validator: v,
		publisher: publisher,
		mu:        mu,
		now:       utcNow,
		log:       log.With().Str("service", "vote").Logger(),
	}
}

// RegisterVote adds one vote to a news item, recomputes its status, appends
// the optional comment and records the vote for the client.
//
// All input is validated before anything is written, and a failed write
// restores the collections already written, so callers never observe a
// partial vote. Once validation passes the writes ignore cancellation of ctx.
// Whether the client already voted is not checked; see CastVote.
func (s *voteService) RegisterVote(ctx context.Context, clientID, newsID string, choice models.VoteChoice, draft *models.CommentDraft) (*models.NewsItem, error) {
	return s.register(ctx, clientID, newsID, choice, draft, false)
}

// CastVote is RegisterVote for a client that has not yet voted on newsID.
// The check and the writes happen under the same lock, so concurrent requests
// from one client cannot both succeed.
func (s *voteService) CastVote(ctx context.Context, clientID, newsID string, choice models.VoteChoice, draft *models.CommentDraft) (*models.NewsItem, error) {
	return s.register(ctx, clientID, newsID, choice, draft, true)
}

func (s *voteService) register(ctx context.Context, clientID, newsID string, choice models.VoteChoice, draft *models.CommentDraft, once bool) (*models.NewsItem, error) {
	if _, err := models.ParseVoteChoice(string(choice)); err != nil {
		return nil, err
	}
	comment, err := s.validator.ValidateComment(draft)
	if err != nil {
		return nil, err
	}

	// A client going away mid-write must not strand half a vote
	writeCtx := context.WithoutCancel(ctx)

	s.mu.Lock()
	updated, event, err := s.commitVote(writeCtx, clientID, newsID, choice, comment, once)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("news_id", newsID).
		Str("client_id", clientID).
		Str("vote", string(choice)).
		Str("status", string(updated.Status)).
		Int("total_votes", updated.TotalVotes).
		Msg("Vote registered")

	if err := s.publisher.PublishVote(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("news_id", newsID).Msg("Failed to publish vote event")
	}
	return updated, nil
}

// commitVote runs the read-increment-recompute-write cycle. Callers hold s.mu.
func (s *voteService) commitVote(ctx context.Context, clientID, newsID string, choice models.VoteChoice, comment *models.CommentDraft, once bool) (*models.NewsItem, events.VoteEvent, error) {
	var event events.VoteEvent

	items, err := s.repos.News.List(ctx)
	if err != nil {
		return nil, event, fmt.Errorf("load news: %w", err)
	}
	idx := -1
	for i, item := range items {
		if item.ID == newsID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, event, &models.NotFoundError{Resource: "news", ID: newsID}
	}

	votes, err := s.repos.Vote.Get(ctx, clientID)
	if err != nil {
		return nil, event, fmt.Errorf("load votes: %w", err)
	}
	if _, voted := votes[newsID]; once && voted {
		return nil, event, &models.AlreadyVotedError{ClientID: clientID, NewsID: newsID}
	}

	var comments map[string][]*models.Comment
	if comment != nil {
		if comments, err = s.repos.Comment.All(ctx); err != nil {
			return nil, event, fmt.Errorf("load comments: %w", err)
		}
	}

	now := s.now()
	original := *items[idx]
	item := original
	applyVote(&item, choice)

	// Writes go comments, news, votes; each undo restores one earlier write
	var undo []func()
	rollback := func(cause error) error {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		return cause
	}

	if comment != nil {
		previous, had := comments[newsID]
		comments[newsID] = append(append([]*models.Comment(nil), previous...), &models.Comment{
			ID:       uuid.New().String(),
			NewsID:   newsID,
			Vote:     choice,
			Text:     comment.Text,
			Evidence: comment.Evidence,
			Author:   comment.Author,
			Date:     now,
		})
		if err := s.repos.Comment.SaveAll(ctx, comments); err != nil {
			return nil, event, fmt.Errorf("save comments: %w", err)
		}
		undo = append(undo, func() {
			if had {
				comments[newsID] = previous
			} else {
				delete(comments, newsID)
			}
			s.restore("comments", newsID, s.repos.Comment.SaveAll(ctx, comments))
		})
	}

	items[idx] = &item
	if err := s.repos.News.SaveAll(ctx, items); err != nil {
		return nil, event, rollback(fmt.Errorf("save news: %w", err))
	}
	undo = append(undo, func() {
		items[idx] = &original
		s.restore("news", newsID, s.repos.News.SaveAll(ctx, items))
	})

	votes[newsID] = choice
	if err := s.repos.Vote.Save(ctx, clientID, votes); err != nil {
		return nil, event, rollback(fmt.Errorf("save votes: %w", err))
	}

	event = events.VoteEvent{
		NewsID:         newsID,
		ClientID:       clientID,
		Vote:           choice,
		PreviousStatus: original.Status,
		Status:         item.Status,
		FakeVotes:      item.FakeVotes,
		NotFakeVotes:   item.NotFakeVotes,
		TotalVotes:     item.TotalVotes,
		WithComment:    comment != nil,
		OccurredAt:     now,
	}

	out := item
	return &out, event, nil
}

func (s *voteService) restore(collection, newsID string, err error) {
	if err != nil {
		s.log.Error().Err(err).
			Str("collection", collection).
			Str("news_id", newsID).
			Msg("Failed to restore collection after aborted vote")
	}
}

// HasVoted reports whether the client has a recorded vote for newsID
func (s *voteService) HasVoted(ctx context.Context, clientID, newsID string) (bool, error) {
	votes, err := s.repos.Vote.Get(ctx, clientID)
	if err != nil {
		return false, fmt.Errorf("load votes: %w", err)
	}
	_, ok := votes[newsID]
	return ok, nil
}
