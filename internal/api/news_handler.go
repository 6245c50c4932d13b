package api

import (
	"net/http"

	"github.com/fact-check-board/internal/config"
	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/query"
	"github.com/fact-check-board/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewsHandler handles news listing, submission and detail endpoints
type NewsHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "news").Logger(),
	}
}

// newsDetailResponse is the detail view payload
type newsDetailResponse struct {
	News      *models.NewsItem     `json:"news"`
	Breakdown models.VoteBreakdown `json:"breakdown"`
	HasVoted  bool                 `json:"has_voted"`
}

// ListNews handles GET /v1/news?filter=...&q=...&sort=...&page=...&page_size=...
func (h *NewsHandler) ListNews(c *gin.Context) {
	filter, err := query.ParseFilter(c.Query("filter"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	page, pageSize, err := pageParams(c, h.cfg.Query.NewsPageSize, h.cfg.Query.MaxPageSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	sortKey := query.SortKey(c.DefaultQuery("sort", string(query.SortNewest)))

	result, err := h.services.News.QueryNews(c.Request.Context(), query.NewsParams{
		Filter:     filter,
		SearchTerm: c.Query("q"),
		Sort:       sortKey,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateNews handles POST /v1/news
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var draft models.NewsDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.services.News.SubmitNewsItem(c.Request.Context(), &draft)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetNews handles GET /v1/news/:id
func (h *NewsHandler) GetNews(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	item, err := h.services.News.GetNews(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	voted, err := h.services.Vote.HasVoted(ctx, clientID(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newsDetailResponse{
		News:      item,
		Breakdown: item.Breakdown(),
		HasVoted:  voted,
	})
}

// ListComments handles GET /v1/news/:id/comments?page=...&page_size=...
func (h *NewsHandler) ListComments(c *gin.Context) {
	page, pageSize, err := pageParams(c, h.cfg.Query.CommentPageSize, h.cfg.Query.MaxPageSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	result, err := h.services.Comment.QueryComments(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStats handles GET /v1/stats
func (h *NewsHandler) GetStats(c *gin.Context) {
	stats, err := h.services.News.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
