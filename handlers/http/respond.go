package httpHandler

import (
	"errors"
	"net/http"

	"habit-tracker/usecases"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps use case error kinds onto status codes. Anything without a
// kind is an internal failure: it is logged and the caller gets a generic message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecases.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, usecases.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, usecases.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Str("user_id", c.GetString(userIDKey)).Msg("request failed")
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}
