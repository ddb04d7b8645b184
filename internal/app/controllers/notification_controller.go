package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/app/services"
	"github.com/communitree/backend/internal/middleware"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// NotificationController handles the notification channel operations
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// Notify handles storing a notification for a recipient
// @Summary Send a notification
// @Description Stores a notification for the recipient and returns its id. Only the newest 20 per recipient are retained.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NotifyRequest true "Recipient, message and type"
// @Success 201 {object} dto.NotifyResponse "Notification sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notify [post]
func (c *NotificationController) Notify(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.NotifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Missing required fields"))
		return
	}

	notificationID, err := c.notificationService.Enqueue(ctx, claims.Email, claims.Username, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NotifyResponse{
		Message:        "Notification sent successfully",
		NotificationID: notificationID,
	})
}

// Fetch handles reading the caller's notifications, newest first
// @Summary Fetch notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notify/fetch [get]
func (c *NotificationController) Fetch(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	notifications, err := c.notificationService.Fetch(ctx, claims.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// MarkHandled handles rewriting a join request notification after its request
// was resolved
// @Summary Mark a join request notification handled
// @Description Rewrites the original join request notification into a resolution record. A notification id selects the exact entry; without one every matching entry is rewritten.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkHandledRequest true "Requester, community, decision and optional notification id"
// @Success 200 {object} dto.MessageResponse "Notification updated"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notify/mark-handled [post]
func (c *NotificationController) MarkHandled(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.MarkHandledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Missing or invalid data"))
		return
	}

	if err := c.notificationService.MarkHandled(ctx, claims.Email, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification updated"})
}
