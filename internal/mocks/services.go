package mocks

import (
	"context"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/query"
	"github.com/fact-check-board/internal/service"
)

// MockNewsService is a mock implementation of NewsService
type MockNewsService struct {
	SubmitFunc func(ctx context.Context, draft *models.NewsDraft) (*models.NewsItem, error)
	GetFunc    func(ctx context.Context, id string) (*models.NewsItem, error)
	QueryFunc  func(ctx context.Context, params query.NewsParams) (*query.Page[*models.NewsItem], error)
	StatsFunc  func(ctx context.Context) (*models.Stats, error)
	SeedFunc   func(ctx context.Context, items []*models.NewsItem, comments map[string][]*models.Comment) (bool, error)

	Submitted []*models.NewsDraft
	LastQuery *query.NewsParams
}

// Verify interface compliance
var _ service.NewsService = (*MockNewsService)(nil)

func NewMockNewsService() *MockNewsService {
	return &MockNewsService{}
}

func (m *MockNewsService) SubmitNewsItem(ctx context.Context, draft *models.NewsDraft) (*models.NewsItem, error) {
	m.Submitted = append(m.Submitted, draft)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, draft)
	}
	return &models.NewsItem{
		ID:          "news-test-id",
		Topic:       draft.Topic,
		ShortDetail: draft.ShortDetail,
		FullDetail:  draft.FullDetail,
		Reporter:    draft.Reporter,
		Image:       draft.Image,
		Status:      models.StatusPending,
	}, nil
}

func (m *MockNewsService) GetNews(ctx context.Context, id string) (*models.NewsItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, &models.NotFoundError{Resource: "news", ID: id}
}

func (m *MockNewsService) QueryNews(ctx context.Context, params query.NewsParams) (*query.Page[*models.NewsItem], error) {
	m.LastQuery = &params
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, params)
	}
	return query.Paginate([]*models.NewsItem{}, params.Page, params.PageSize)
}

func (m *MockNewsService) Stats(ctx context.Context) (*models.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &models.Stats{}, nil
}

func (m *MockNewsService) SeedIfEmpty(ctx context.Context, items []*models.NewsItem, comments map[string][]*models.Comment) (bool, error) {
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx, items, comments)
	}
	return false, nil
}

// VoteCall records one RegisterVote invocation
type VoteCall struct {
	ClientID string
	NewsID   string
	Choice   models.VoteChoice
	Comment  *models.CommentDraft
}

// MockVoteService is a mock implementation of VoteService
type MockVoteService struct {
	RegisterFunc func(ctx context.Context, clientID, newsID string, choice models.VoteChoice, comment *models.CommentDraft) (*models.NewsItem, error)
	// Voted holds clientID -> newsID pairs reported by HasVoted
	Voted       map[string]map[string]bool
	HasVotedErr error
	Calls       []VoteCall
}

// Verify interface compliance
var _ service.VoteService = (*MockVoteService)(nil)

func NewMockVoteService() *MockVoteService {
	return &MockVoteService{Voted: make(map[string]map[string]bool)}
}

func (m *MockVoteService) RegisterVote(ctx context.Context, clientID, newsID string, choice models.VoteChoice, comment *models.CommentDraft) (*models.NewsItem, error) {
	m.Calls = append(m.Calls, VoteCall{ClientID: clientID, NewsID: newsID, Choice: choice, Comment: comment})
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, clientID, newsID, choice, comment)
	}
	if m.Voted[clientID] == nil {
		m.Voted[clientID] = make(map[string]bool)
	}
	m.Voted[clientID][newsID] = true
	return &models.NewsItem{ID: newsID, Status: models.StatusPending}, nil
}

// CastVote rejects clients marked in Voted, then behaves like RegisterVote
func (m *MockVoteService) CastVote(ctx context.Context, clientID, newsID string, choice models.VoteChoice, comment *models.CommentDraft) (*models.NewsItem, error) {
	if m.Voted[clientID][newsID] {
		return nil, &models.AlreadyVotedError{ClientID: clientID, NewsID: newsID}
	}
	return m.RegisterVote(ctx, clientID, newsID, choice, comment)
}

func (m *MockVoteService) HasVoted(ctx context.Context, clientID, newsID string) (bool, error) {
	if m.HasVotedErr != nil {
		return false, m.HasVotedErr
	}
	return m.Voted[clientID][newsID], nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	QueryFunc func(ctx context.Context, newsID string, page, pageSize int) (*query.Page[*models.Comment], error)
	Comments  map[string][]*models.Comment
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{Comments: make(map[string][]*models.Comment)}
}

func (m *MockCommentService) QueryComments(ctx context.Context, newsID string, page, pageSize int) (*query.Page[*models.Comment], error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, newsID, page, pageSize)
	}
	list, ok := m.Comments[newsID]
	if !ok {
		return nil, &models.NotFoundError{Resource: "news", ID: newsID}
	}
	return query.Paginate(list, page, pageSize)
}
