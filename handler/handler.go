package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tranvuminh/papermind-be/types"
)

// statusForError maps the pipeline error kinds onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrUnsupportedFormat),
		errors.Is(err, types.ErrFileTooLarge),
		errors.Is(err, types.ErrNoDocument):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrExtractionFailed),
		errors.Is(err, types.ErrGenerationRejected),
		errors.Is(err, types.ErrFormattingFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   data,
	})
}
