package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/middleware"
	"github.com/communitree/backend/internal/pkg/apperrors"
	"github.com/communitree/backend/internal/pkg/auth"
)

type fakeMembershipService struct {
	joinErr      error
	respondErr   error
	joinedAs     string
	joinedToken  string
	joined       string
	respondedReq *dto.JoinResponseRequest
}

func (f *fakeMembershipService) RequestJoin(_ context.Context, requesterEmail, token, community string) error {
	f.joinedAs = requesterEmail
	f.joinedToken = token
	f.joined = community
	return f.joinErr
}

func (f *fakeMembershipService) RespondToJoin(_ context.Context, _, _ string, req *dto.JoinResponseRequest) error {
	f.respondedReq = req
	return f.respondErr
}

func newMembershipTestRouter(t *testing.T, svc *fakeMembershipService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "communitree.test",
	})
	token, err := jwtService.Sign("ada@example.com", "ada")
	require.NoError(t, err)

	controller := NewMembershipController(svc)
	router := gin.New()
	group := router.Group("/api/community")
	group.Use(middleware.NewAuthMiddleware(jwtService).JWTAuth())
	group.POST("/join", controller.Join)
	group.POST("/join-response", controller.JoinResponse)

	return router, token
}

func postJSON(router *gin.Engine, token, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJoinEndpoint(t *testing.T) {
	svc := &fakeMembershipService{}
	router, token := newMembershipTestRouter(t, svc)

	w := postJSON(router, token, "/api/community/join", `{"community":"gophers"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Join request sent"}`, w.Body.String())
	assert.Equal(t, "ada@example.com", svc.joinedAs)
	assert.Equal(t, token, svc.joinedToken, "the caller's token is forwarded to the service")
	assert.Equal(t, "gophers", svc.joined)
}

func TestJoinEndpointConflict(t *testing.T) {
	svc := &fakeMembershipService{joinErr: apperrors.ErrAlreadyRequested}
	router, token := newMembershipTestRouter(t, svc)

	w := postJSON(router, token, "/api/community/join", `{"community":"gophers"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Already requested to join"}`, w.Body.String())
}

func TestJoinEndpointNotifyFailure(t *testing.T) {
	svc := &fakeMembershipService{joinErr: apperrors.ErrNotifyFailed}
	router, token := newMembershipTestRouter(t, svc)

	w := postJSON(router, token, "/api/community/join", `{"community":"gophers"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to notify the creator"}`, w.Body.String())
}

func TestJoinEndpointRequiresToken(t *testing.T) {
	router, _ := newMembershipTestRouter(t, &fakeMembershipService{})

	req := httptest.NewRequest(http.MethodPost, "/api/community/join", strings.NewReader(`{"community":"gophers"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJoinResponseEndpoint(t *testing.T) {
	svc := &fakeMembershipService{}
	router, token := newMembershipTestRouter(t, svc)

	w := postJSON(router, token, "/api/community/join-response",
		`{"requester":"grace","requester_email":"grace@example.com","community":"gophers","decision":"accept","notification_id":"n1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User accepted successfully"}`, w.Body.String())

	require.NotNil(t, svc.respondedReq)
	assert.Equal(t, "grace", svc.respondedReq.Requester)
	assert.Equal(t, "n1", svc.respondedReq.NotificationID)
}

func TestJoinResponseEndpointReject(t *testing.T) {
	svc := &fakeMembershipService{}
	router, token := newMembershipTestRouter(t, svc)

	w := postJSON(router, token, "/api/community/join-response",
		`{"requester":"grace","requester_email":"grace@example.com","community":"gophers","decision":"reject"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User rejected successfully"}`, w.Body.String())
}
