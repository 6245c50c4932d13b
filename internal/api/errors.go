package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fact-check-board/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps domain errors to status codes. Anything else is logged
// and hidden behind a generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var vErr *models.ValidationError
	var nfErr *models.NotFoundError
	var avErr *models.AlreadyVotedError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": vErr.Message,
			"field": vErr.Field,
			"kind":  "validation",
		})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{
			"error": nfErr.Error(),
			"kind":  "not_found",
		})
	case errors.As(err, &avErr):
		log.Info().Str("news_id", avErr.NewsID).Str("client_id", avErr.ClientID).Msg("Duplicate vote rejected")
		c.JSON(http.StatusConflict, gin.H{
			"error": "you have already voted on this news item",
			"kind":  "already_voted",
		})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// clientID reads the caller identity used for per-client vote records
func clientID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
	if id == "" {
		return "anonymous"
	}
	return id
}

// intQuery parses an optional integer query parameter
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.ValidationError{Field: name, Message: name + " must be an integer"}
	}
	return n, nil
}

// pageParams reads page and page_size, capping page_size at maxSize
func pageParams(c *gin.Context, defSize, maxSize int) (int, int, error) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	size, err := intQuery(c, "page_size", defSize)
	if err != nil {
		return 0, 0, err
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return page, size, nil
}
