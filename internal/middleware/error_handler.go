package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperdash/monitor/internal/domain/dto"
	"github.com/hyperdash/monitor/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors attached to the
// context into a standardized JSON error response.
//
// Behavior:
//   - Lets the handler chain run first.
//   - If any handler called c.Error(...), logs the last error and responds
//     with 500 and a dto.ErrorResponse, unless a response was written already.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")

	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError stops the handler chain and writes a standardized JSON
// error response with the given status code.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
