package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/app/services"
	"github.com/communitree/backend/internal/middleware"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// HierarchyController handles the community hierarchy tree operations
type HierarchyController struct {
	hierarchyService services.HierarchyService
}

// NewHierarchyController creates a new HierarchyController
func NewHierarchyController(hierarchyService services.HierarchyService) *HierarchyController {
	return &HierarchyController{
		hierarchyService: hierarchyService,
	}
}

// CreateChildOf handles linking one user under another in a community's tree
// @Summary Add a hierarchy edge
// @Description Links the from user as a child of the to user, scoped to one community. Both users and the community must exist.
// @Tags hierarchy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChildOfRequest true "Community and the two usernames"
// @Success 201 {object} dto.MessageResponse "Relationship created"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or unknown user/community"
// @Router /community/create-child-of [post]
func (c *HierarchyController) CreateChildOf(ctx *gin.Context) {
	var req dto.CreateChildOfRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Missing required fields"))
		return
	}

	if err := c.hierarchyService.AddChild(ctx, req.Community, req.From, req.To); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Relationship created"})
}

// LeaderNodeAndTree handles reading a community's full hierarchy
// @Summary Get the leader and hierarchy tree
// @Description Returns the community's creator as leader plus every node and edge of its hierarchy. The leader is always in the node set.
// @Tags hierarchy
// @Produce json
// @Security BearerAuth
// @Param community query string true "Community name"
// @Success 200 {object} dto.LeaderTreeResponse
// @Failure 404 {object} dto.ErrorResponse "Leader not found"
// @Router /community/leader-node-and-tree [get]
func (c *HierarchyController) LeaderNodeAndTree(ctx *gin.Context) {
	tree, err := c.hierarchyService.LeaderAndTree(ctx, ctx.Query("community"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tree)
}

// DeleteUserNode handles removing a user's hierarchy edges in one community
// @Summary Remove a user from a hierarchy
// @Description Deletes the user's inbound and outbound hierarchy edges for one community. The user node itself survives.
// @Tags hierarchy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteUserNodeRequest true "Community and username"
// @Success 200 {object} dto.MessageResponse "User removed from hierarchy"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Router /community/delete-user-node [post]
func (c *HierarchyController) DeleteUserNode(ctx *gin.Context) {
	var req dto.DeleteUserNodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Missing required fields"))
		return
	}

	if err := c.hierarchyService.RemoveUser(ctx, req.Community, req.Username); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User removed from hierarchy"})
}
