package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Conflict reasons
// keep their specific wire messages; storage failures surface the underlying
// message verbatim.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAlreadyRequested):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Already requested to join"})
	case errors.Is(err, apperrors.ErrAlreadyMember):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Already a member"})
	case errors.Is(err, apperrors.ErrIsCreator):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "You are the creator"})
	case errors.Is(err, apperrors.ErrCommunityNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Community not found"})
	case errors.Is(err, apperrors.ErrLeaderNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Leader not found"})
	case errors.Is(err, apperrors.ErrCommunityNameTaken):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Community name already taken"})
	case errors.Is(err, apperrors.ErrInvalidLevel):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid level"})
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "User or community not found"})
	case errors.Is(err, apperrors.ErrNotifyFailed):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to notify the creator"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: errorMessage(err, "Bad request")})
	case errors.Is(err, apperrors.ErrStorage):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: errorMessage(err, "Storage failure")})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

// errorMessage extracts the attached message from a CustomError, falling back
// to a fixed string
func errorMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
