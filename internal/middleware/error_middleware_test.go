package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/communitree/backend/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"already requested", apperrors.ErrAlreadyRequested, http.StatusBadRequest, `{"error":"Already requested to join"}`},
		{"already member", apperrors.ErrAlreadyMember, http.StatusBadRequest, `{"error":"Already a member"}`},
		{"is creator", apperrors.ErrIsCreator, http.StatusBadRequest, `{"error":"You are the creator"}`},
		{"community not found", apperrors.ErrCommunityNotFound, http.StatusNotFound, `{"error":"Community not found"}`},
		{"leader not found", apperrors.ErrLeaderNotFound, http.StatusNotFound, `{"error":"Leader not found"}`},
		{"name taken", apperrors.ErrCommunityNameTaken, http.StatusBadRequest, `{"error":"Community name already taken"}`},
		{"invalid level", apperrors.ErrInvalidLevel, http.StatusBadRequest, `{"error":"Invalid level"}`},
		{"user not found", apperrors.ErrUserNotFound, http.StatusBadRequest, `{"error":"User or community not found"}`},
		{"notify failed", apperrors.ErrNotifyFailed, http.StatusInternalServerError, `{"error":"Failed to notify the creator"}`},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"bad request with message", apperrors.NewBadRequestError("Missing required fields"), http.StatusBadRequest, `{"error":"Missing required fields"}`},
		{"storage keeps driver message", apperrors.NewStorageError(errors.New("bolt connection refused")), http.StatusInternalServerError, `{"error":"bolt connection refused"}`},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, `{"error":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
