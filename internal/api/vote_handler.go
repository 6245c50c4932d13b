package api

import (
	"net/http"

	"github.com/fact-check-board/internal/models"
	"github.com/fact-check-board/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// VoteHandler handles vote endpoints
type VoteHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(services *service.Services, log zerolog.Logger) *VoteHandler {
	return &VoteHandler{
		services: services,
		log:      log.With().Str("handler", "vote").Logger(),
	}
}

type voteRequest struct {
	Vote    string               `json:"vote"`
	Comment *models.CommentDraft `json:"comment,omitempty"`
}

type voteResponse struct {
	News      *models.NewsItem     `json:"news"`
	Breakdown models.VoteBreakdown `json:"breakdown"`
}

// CreateVote handles POST /v1/news/:id/votes
// One vote per client and news item; a second attempt gets 409.
func (h *VoteHandler) CreateVote(c *gin.Context) {
	ctx := c.Request.Context()
	newsID := c.Param("id")
	client := clientID(c)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	choice, err := models.ParseVoteChoice(req.Vote)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	item, err := h.services.Vote.CastVote(ctx, client, newsID, choice, req.Comment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, voteResponse{
		News:      item,
		Breakdown: item.Breakdown(),
	})
}
