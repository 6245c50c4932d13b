package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/fact-check-board/internal/mocks"
	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/query"
	"github.com/fact-check-board/internal/repository"
	"github.com/fact-check-board/internal/service"
	"github.com/fact-check-board/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHarness struct {
	store     *mocks.MockStore
	repos     *repository.Repositories
	publisher *mocks.MockPublisher
	services  *service.Services
}

func newTestHarness(t *testing.T, items ...*models.NewsItem) *testHarness {
	t.Helper()

	s := mocks.NewMockStore()
	repos := repository.New(s)
	pub := mocks.NewMockPublisher()

	if len(items) > 0 {
		require.NoError(t, repos.News.SaveAll(context.Background(), items))
	}
	require.NoError(t, repos.Comment.SaveAll(context.Background(), nil))
	s.PutCalls = nil

	return &testHarness{
		store:     s,
		repos:     repos,
		publisher: pub,
		services:  service.NewServices(repos, pub, zerolog.Nop()),
	}
}

func (h *testHarness) snapshot(t *testing.T) map[store.Collection][]byte {
	t.Helper()
	ctx := context.Background()
	out := make(map[store.Collection][]byte)
	for _, c := range []store.Collection{store.News, store.Comments, store.VotesFor("alice")} {
		blob, err := h.store.MemoryStore.Get(ctx, c)
		require.NoError(t, err)
		out[c] = blob
	}
	return out
}

func newsItem(id string, fake, notFake int) *models.NewsItem {
	return &models.NewsItem{
		ID:           id,
		Topic:        "Topic " + id,
		ShortDetail:  "Short " + id,
		FullDetail:   "Full " + id,
		Reporter:     "Reporter " + id,
		Date:         time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		FakeVotes:    fake,
		NotFakeVotes: notFake,
		TotalVotes:   fake + notFake,
		Status:       service.ComputeStatus(fake, notFake),
	}
}

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		fake, notFake int
		want          models.Status
	}{
		{0, 0, models.StatusPending},
		{7, 2, models.StatusPending},
		{9, 0, models.StatusPending},
		{8, 2, models.StatusFake},
		{2, 8, models.StatusNotFake},
		{0, 10, models.StatusNotFake},
		{7, 3, models.StatusPending},
		{3, 7, models.StatusPending},
		{71, 29, models.StatusFake},
		{29, 71, models.StatusNotFake},
		{5, 5, models.StatusPending},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_fake_%d_not_fake", tt.fake, tt.notFake), func(t *testing.T) {
			assert.Equal(t, tt.want, service.ComputeStatus(tt.fake, tt.notFake))
		})
	}
}

func TestComputeStatus_SmallSamplesArePending(t *testing.T) {
	for fake := 0; fake < service.MinVotesForVerdict; fake++ {
		for notFake := 0; fake+notFake < service.MinVotesForVerdict; notFake++ {
			assert.Equal(t, models.StatusPending, service.ComputeStatus(fake, notFake), "fake=%d notFake=%d", fake, notFake)
		}
	}
}

func TestRegisterVote_CrossesThreshold(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 7, 2))
	ctx := context.Background()

	before, err := h.services.News.GetNews(ctx, "news_001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, before.Status, "9 votes is below the sample size")

	updated, err := h.services.Vote.RegisterVote(ctx, "alice", "news_001", models.VoteFake, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.FakeVotes)
	assert.Equal(t, 2, updated.NotFakeVotes)
	assert.Equal(t, 10, updated.TotalVotes)
	assert.Equal(t, models.StatusFake, updated.Status)

	stored, err := h.services.News.GetNews(ctx, "news_001")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	published := h.publisher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, models.StatusPending, published[0].PreviousStatus)
	assert.Equal(t, models.StatusFake, published[0].Status)
	assert.True(t, published[0].StatusChanged())
}

func TestRegisterVote_StaysPendingBelowSample(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 6, 2))

	updated, err := h.services.Vote.RegisterVote(context.Background(), "alice", "news_001", models.VoteFake, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.FakeVotes)
	assert.Equal(t, 9, updated.TotalVotes)
	assert.Equal(t, models.StatusPending, updated.Status)
}

func TestRegisterVote_StatusCanFlipBack(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 7, 3))
	ctx := context.Background()

	updated, err := h.services.Vote.RegisterVote(ctx, "alice", "news_001", models.VoteFake, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFake, updated.Status, "8/11 is above 0.7")

	updated, err = h.services.Vote.RegisterVote(ctx, "bob", "news_001", models.VoteNotFake, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status, "8/12 drops back below 0.7")
}

func TestRegisterVote_UnknownNews(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))
	before := h.snapshot(t)

	_, err := h.services.Vote.RegisterVote(context.Background(), "alice", "news_404", models.VoteFake, &models.CommentDraft{
		Text: "This never happened at all.",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var nf *models.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "news_404", nf.ID)

	assert.Empty(t, h.store.PutCalls, "store must not be written")
	assert.Equal(t, before, h.snapshot(t))
	assert.Empty(t, h.publisher.Published())
}

func TestRegisterVote_ShortCommentRejected(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 3, 1))
	before := h.snapshot(t)

	_, err := h.services.Vote.RegisterVote(context.Background(), "alice", "news_001", models.VoteFake, &models.CommentDraft{
		Text: "123456789",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.Empty(t, h.store.PutCalls)
	assert.Equal(t, before, h.snapshot(t))

	item, err := h.services.News.GetNews(context.Background(), "news_001")
	require.NoError(t, err)
	assert.Equal(t, 3, item.FakeVotes)
	assert.Equal(t, 4, item.TotalVotes)

	voted, err := h.services.Vote.HasVoted(context.Background(), "alice", "news_001")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestRegisterVote_InvalidChoice(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))

	_, err := h.services.Vote.RegisterVote(context.Background(), "alice", "news_001", models.VoteChoice("maybe"), nil)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, h.store.PutCalls)
}

func TestRegisterVote_WithComment(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))
	ctx := context.Background()

	_, err := h.services.Vote.RegisterVote(ctx, "alice", "news_001", models.VoteFake, &models.CommentDraft{
		Text:     "  The photo was taken in 2012, not last week.  ",
		Evidence: "not a link",
	})
	require.NoError(t, err)

	_, err = h.services.Vote.RegisterVote(ctx, "bob", "news_001", models.VoteNotFake, &models.CommentDraft{
		Evidence: "https://factcheck.example.org/claims/42",
		Author:   "Bob",
	})
	require.NoError(t, err)

	page, err := h.services.Comment.QueryComments(ctx, "news_001", 1, 5)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "The photo was taken in 2012, not last week.", first.Text)
	assert.Empty(t, first.Evidence, "invalid evidence is dropped")
	assert.Equal(t, models.AnonymousAuthor, first.Author)
	assert.Equal(t, models.VoteFake, first.Vote)
	assert.Equal(t, "news_001", first.NewsID)
	assert.NotEmpty(t, first.ID)

	second := page.Items[1]
	assert.Equal(t, "https://factcheck.example.org/claims/42", second.Evidence)
	assert.Equal(t, "Bob", second.Author)

	published := h.publisher.Published()
	require.Len(t, published, 2)
	assert.True(t, published[0].WithComment)
}

func TestRegisterVote_BlankCommentIsIgnored(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))
	ctx := context.Background()

	_, err := h.services.Vote.RegisterVote(ctx, "alice", "news_001", models.VoteFake, &models.CommentDraft{Text: "   "})
	require.NoError(t, err)

	assert.NotContains(t, h.store.PutCalls, store.Comments)

	page, err := h.services.Comment.QueryComments(ctx, "news_001", 1, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestRegisterVote_RollsBackOnVoteRecordFailure(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 2, 2))
	before := h.snapshot(t)
	h.store.FailPutOn[store.VotesFor("alice")] = errors.New("disk full")

	_, err := h.services.Vote.RegisterVote(context.Background(), "alice", "news_001", models.VoteFake, &models.CommentDraft{
		Text: "Satellite images contradict this.",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, before, h.snapshot(t), "news and comments are restored")
	assert.Empty(t, h.publisher.Published())
}

func TestRegisterVote_RollsBackOnNewsFailure(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 2, 2))
	before := h.snapshot(t)
	h.store.FailPutOn[store.News] = errors.New("connection reset")

	_, err := h.services.Vote.RegisterVote(context.Background(), "alice", "news_001", models.VoteFake, &models.CommentDraft{
		Text: "Satellite images contradict this.",
	})
	require.Error(t, err)
	assert.Equal(t, before, h.snapshot(t))
}

func TestRegisterVote_PublishFailureDoesNotFailVote(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))
	h.publisher.Err = errors.New("broker down")

	updated, err := h.services.Vote.RegisterVote(context.Background(), "alice", "news_001", models.VoteNotFake, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.NotFakeVotes)
}

func TestRegisterVote_CompletesWhenCallerCancels(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.store.HonorContext = true
	h.store.AfterPut = func(c store.Collection) {
		if c == store.Comments {
			cancel()
		}
	}

	updated, err := h.services.Vote.RegisterVote(ctx, "alice", "news_001", models.VoteFake, &models.CommentDraft{
		Text: "The quoted minister never said this.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.FakeVotes)
	assert.Equal(t, []store.Collection{store.Comments, store.News, store.VotesFor("alice")}, h.store.PutCalls)

	h.store.HonorContext = false
	bg := context.Background()
	stored, err := h.services.News.GetNews(bg, "news_001")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FakeVotes)

	page, err := h.services.Comment.QueryComments(bg, "news_001", 1, 5)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	voted, err := h.services.Vote.HasVoted(bg, "alice", "news_001")
	require.NoError(t, err)
	assert.True(t, voted)
}

func TestCastVote_RejectsSecondVote(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))
	ctx := context.Background()

	_, err := h.services.Vote.CastVote(ctx, "alice", "news_001", models.VoteFake, nil)
	require.NoError(t, err)
	before := h.snapshot(t)
	h.store.PutCalls = nil

	_, err = h.services.Vote.CastVote(ctx, "alice", "news_001", models.VoteNotFake, &models.CommentDraft{
		Text: "Changed my mind after reading more.",
	})
	assert.ErrorIs(t, err, models.ErrAlreadyVoted)
	assert.Empty(t, h.store.PutCalls)
	assert.Equal(t, before, h.snapshot(t))
	assert.Len(t, h.publisher.Published(), 1)

	_, err = h.services.Vote.CastVote(ctx, "bob", "news_001", models.VoteNotFake, nil)
	require.NoError(t, err)

	_, err = h.services.Vote.CastVote(ctx, "alice", "news_404", models.VoteFake, nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCastVote_ConcurrentSameClient(t *testing.T) {
	repos := repository.New(store.NewMemoryStore())
	require.NoError(t, repos.News.SaveAll(context.Background(), []*models.NewsItem{newsItem("news_001", 0, 0)}))
	services := service.NewServices(repos, nil, zerolog.Nop())

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = services.Vote.CastVote(context.Background(), "alice", "news_001", models.VoteFake, nil)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, models.ErrAlreadyVoted)
	}
	assert.Equal(t, 1, accepted)

	item, err := services.News.GetNews(context.Background(), "news_001")
	require.NoError(t, err)
	assert.Equal(t, 1, item.TotalVotes)
}

func TestHasVoted(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0), newsItem("news_002", 0, 0))
	ctx := context.Background()

	voted, err := h.services.Vote.HasVoted(ctx, "alice", "news_001")
	require.NoError(t, err)
	assert.False(t, voted)

	_, err = h.services.Vote.RegisterVote(ctx, "alice", "news_001", models.VoteFake, nil)
	require.NoError(t, err)

	voted, err = h.services.Vote.HasVoted(ctx, "alice", "news_001")
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = h.services.Vote.HasVoted(ctx, "alice", "news_002")
	require.NoError(t, err)
	assert.False(t, voted)

	voted, err = h.services.Vote.HasVoted(ctx, "bob", "news_001")
	require.NoError(t, err)
	assert.False(t, voted, "vote records are per client")
}

// Tallies and status stay consistent over any sequence of votes.
func TestRegisterVote_Invariants(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 60; i++ {
		choice := models.VoteNotFake
		if rng.Intn(4) != 0 {
			choice = models.VoteFake
		}

		item, err := h.services.Vote.RegisterVote(ctx, fmt.Sprintf("client-%d", i), "news_001", choice, nil)
		require.NoError(t, err)

		assert.Equal(t, item.FakeVotes+item.NotFakeVotes, item.TotalVotes)
		assert.Equal(t, i+1, item.TotalVotes)
		assert.Equal(t, service.ComputeStatus(item.FakeVotes, item.NotFakeVotes), item.Status)
		if item.TotalVotes < service.MinVotesForVerdict {
			assert.Equal(t, models.StatusPending, item.Status)
		}
	}
}

func TestRegisterVote_ConcurrentVotesAreNotLost(t *testing.T) {
	repos := repository.New(store.NewMemoryStore())
	require.NoError(t, repos.News.SaveAll(context.Background(), []*models.NewsItem{newsItem("news_001", 0, 0)}))
	services := service.NewServices(repos, nil, zerolog.Nop())

	const voters = 40
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			choice := models.VoteFake
			if i%2 == 0 {
				choice = models.VoteNotFake
			}
			_, err := services.Vote.RegisterVote(context.Background(), fmt.Sprintf("client-%d", i), "news_001", choice, nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	item, err := services.News.GetNews(context.Background(), "news_001")
	require.NoError(t, err)
	assert.Equal(t, voters, item.TotalVotes)
	assert.Equal(t, voters/2, item.FakeVotes)
	assert.Equal(t, models.StatusPending, item.Status)
}

func TestSubmitNewsItem_ThenQueryNewest(t *testing.T) {
	older := newsItem("news_old", 0, 0)
	older.Date = time.Now().UTC().Add(-48 * time.Hour)
	h := newTestHarness(t, older)
	ctx := context.Background()

	created, err := h.services.News.SubmitNewsItem(ctx, &models.NewsDraft{
		Topic:       "  City water supply contaminated  ",
		ShortDetail: "Viral post claims tap water is unsafe.",
		FullDetail:  "A message circulating on social media claims the water supply is contaminated.",
		Reporter:    "Local Watch",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "City water supply contaminated", created.Topic)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Zero(t, created.TotalVotes)
	assert.WithinDuration(t, time.Now(), created.Date, time.Minute)

	page, err := h.services.News.QueryNews(ctx, query.NewsParams{
		Filter:   query.Filter(models.StatusPending),
		Sort:     query.SortNewest,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, created.ID, page.Items[0].ID)

	items, err := h.repos.News.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, items[0].ID, "new items are stored at the head")
}

func TestSubmitNewsItem_Invalid(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.services.News.SubmitNewsItem(context.Background(), &models.NewsDraft{
		Topic:       "Topic",
		ShortDetail: "Short",
		FullDetail:  "Full",
		Reporter:    "",
	})
	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "reporter", vErr.Field)
	assert.Empty(t, h.store.PutCalls)
}

func TestSubmitNewsItem_StoreFailure(t *testing.T) {
	h := newTestHarness(t)
	h.store.PutError = errors.New("read-only store")

	_, err := h.services.News.SubmitNewsItem(context.Background(), &models.NewsDraft{
		Topic: "T", ShortDetail: "S", FullDetail: "F", Reporter: "R",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrValidation)
}

func TestQueryNews_InvalidPageSize(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.services.News.QueryNews(context.Background(), query.NewsParams{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetNews_NotFound(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0))

	_, err := h.services.News.GetNews(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestQueryComments(t *testing.T) {
	h := newTestHarness(t, newsItem("news_001", 0, 0), newsItem("news_002", 0, 0))
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := h.services.Vote.RegisterVote(ctx, fmt.Sprintf("client-%d", i), "news_001", models.VoteFake, &models.CommentDraft{
			Text: fmt.Sprintf("Comment number %d on this story", i),
		})
		require.NoError(t, err)
	}

	page, err := h.services.Comment.QueryComments(ctx, "news_001", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Comment number 5 on this story", page.Items[0].Text, "insertion order is kept")

	empty, err := h.services.Comment.QueryComments(ctx, "news_002", 1, 5)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)

	_, err = h.services.Comment.QueryComments(ctx, "missing", 1, 5)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = h.services.Comment.QueryComments(ctx, "news_001", 1, -1)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestStats(t *testing.T) {
	h := newTestHarness(t,
		newsItem("a", 9, 1),
		newsItem("b", 1, 9),
		newsItem("c", 0, 12),
		newsItem("d", 2, 2),
	)

	stats, err := h.services.News.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Stats{Total: 4, Verified: 2, Fake: 1, Pending: 1}, stats)
}

func TestSeedIfEmpty(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	seeded := newsItem("seed_1", 0, 0)
	seeded.FakeVotes = 12
	seeded.NotFakeVotes = 1
	comments := map[string][]*models.Comment{
		"seed_1": {{ID: "c1", NewsID: "seed_1", Vote: models.VoteFake, Text: "Debunked by the agency.", Author: "Ann"}},
	}

	ok, err := h.services.News.SeedIfEmpty(ctx, []*models.NewsItem{seeded}, comments)
	require.NoError(t, err)
	assert.True(t, ok)

	item, err := h.services.News.GetNews(ctx, "seed_1")
	require.NoError(t, err)
	assert.Equal(t, 13, item.TotalVotes)
	assert.Equal(t, models.StatusFake, item.Status)

	page, err := h.services.Comment.QueryComments(ctx, "seed_1", 1, 5)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	ok, err = h.services.News.SeedIfEmpty(ctx, []*models.NewsItem{newsItem("other", 0, 0)}, nil)
	require.NoError(t, err)
	assert.False(t, ok, "existing collection is left alone")
}

func TestSeedIfEmpty_EmptyCollectionCountsAsPresent(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	require.NoError(t, h.repos.News.SaveAll(ctx, nil))

	ok, err := h.services.News.SeedIfEmpty(ctx, []*models.NewsItem{newsItem("seed_1", 0, 0)}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
