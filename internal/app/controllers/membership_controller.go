package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/app/services"
	"github.com/communitree/backend/internal/middleware"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// MembershipController handles the join request and join response operations
type MembershipController struct {
	membershipService services.MembershipService
}

// NewMembershipController creates a new MembershipController
func NewMembershipController(membershipService services.MembershipService) *MembershipController {
	return &MembershipController{
		membershipService: membershipService,
	}
}

// Join handles a join request for a community
// @Summary Request to join a community
// @Description Creates a pending join request and notifies the community's creator. On notification failure the request is rolled back.
// @Tags membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinRequest true "Community name"
// @Success 200 {object} dto.MessageResponse "Join request sent"
// @Failure 400 {object} dto.ErrorResponse "Already requested, already a member, or creator"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to notify the creator"
// @Router /community/join [post]
func (c *MembershipController) Join(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Community name is required"))
		return
	}

	token := middleware.TokenFromContext(ctx)
	if err := c.membershipService.RequestJoin(ctx, claims.Email, token, req.Community); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Join request sent"})
}

// JoinResponse handles accepting or rejecting a pending join request
// @Summary Resolve a join request
// @Description Accepts or rejects a pending request. The requester is notified and the original notification rewritten, both best-effort.
// @Tags membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinResponseRequest true "Requester, community and decision"
// @Success 200 {object} dto.MessageResponse "User accepted/rejected successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /community/join-response [post]
func (c *MembershipController) JoinResponse(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.JoinResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Missing or invalid data"))
		return
	}

	token := middleware.TokenFromContext(ctx)
	if err := c.membershipService.RespondToJoin(ctx, claims.Email, token, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("User %sed successfully", req.Decision),
	})
}
