package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/app/services"
	"github.com/communitree/backend/internal/middleware"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// CommunityController handles community lifecycle operations
type CommunityController struct {
	communityService services.CommunityService
	userService      services.UserService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, userService services.UserService) *CommunityController {
	return &CommunityController{
		communityService: communityService,
		userService:      userService,
	}
}

// Register handles creating a new community
// @Summary Register a community
// @Description Creates a community owned by the caller. Names are unique; the member cap is derived from the level.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterCommunityRequest true "Community details"
// @Success 201 {object} dto.MessageResponse "Community registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing fields, invalid level or name taken"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /community/register [post]
func (c *CommunityController) Register(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.RegisterCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Missing required fields"))
		return
	}

	if err := c.communityService.Create(ctx, claims.Email, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Community registered successfully"})
}

// Search handles case-insensitive community search
// @Summary Search communities
// @Description Matches community names containing the query, with the caller's joinability per result
// @Tags communities
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name fragment"
// @Success 200 {array} dto.CommunitySearchResult
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /community/search [get]
func (c *CommunityController) Search(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	results, err := c.communityService.Search(ctx, ctx.Query("q"), claims.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// Delete handles removing a community and everything scoped to it
// @Summary Delete a community
// @Description Deletes the community node, its membership edges and its hierarchy edges. User nodes survive.
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteCommunityRequest true "Community name"
// @Success 200 {object} dto.MessageResponse "Community deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Community name is required"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /community/delete-community [post]
func (c *CommunityController) Delete(ctx *gin.Context) {
	var req dto.DeleteCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Community name is required"))
		return
	}

	if err := c.communityService.Delete(ctx, req.Community); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Community deleted successfully"})
}

// Members handles listing a community's leader and members
// @Summary List community members
// @Tags communities
// @Produce json
// @Security BearerAuth
// @Param community query string true "Community name"
// @Success 200 {object} dto.MembersResponse
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /community/members [get]
func (c *CommunityController) Members(ctx *gin.Context) {
	members, err := c.communityService.Members(ctx, ctx.Query("community"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// RemoveMember handles revoking one membership
// @Summary Remove a member
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RemoveMemberRequest true "Community and member username"
// @Success 200 {object} dto.MessageResponse "Member removed successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Router /community/remove-member [post]
func (c *CommunityController) RemoveMember(ctx *gin.Context) {
	var req dto.RemoveMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Missing required fields"))
		return
	}

	if err := c.communityService.RemoveMember(ctx, req.Community, req.Username); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Member removed successfully"})
}

// UserDetails handles returning the caller's profile, creating the user node
// on first contact
// @Summary Get the caller's details
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDetailsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /community/user-details [get]
func (c *CommunityController) UserDetails(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	details, err := c.userService.Details(ctx, claims.Email, claims.Username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, details)
}
