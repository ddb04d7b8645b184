package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// NotificationStore persists notifications with the per-user retention bound
type NotificationStore interface {
	Create(ctx context.Context, recipientEmail string, notification *models.Notification) error
	FetchLatest(ctx context.Context, email string) ([]models.Notification, error)
	MarkHandledByID(ctx context.Context, ownerEmail, notificationID, newMessage, newType string) error
	MarkHandledByMatch(ctx context.Context, ownerEmail, requesterUsername, community, newMessage, newType string) error
}

// NotificationService is the notification channel: a durable per-user queue
// capped at the 20 most recent entries
type NotificationService interface {
	Enqueue(ctx context.Context, senderEmail, senderUsername string, req *dto.NotifyRequest) (string, error)
	Fetch(ctx context.Context, email string) ([]dto.NotificationResponse, error)
	MarkHandled(ctx context.Context, ownerEmail string, req *dto.MarkHandledRequest) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notifications NotificationStore
	logger        zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications NotificationStore, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notifications: notifications,
		logger:        logger,
	}
}

// Enqueue stores a notification for the recipient and returns its correlation
// id. Eviction of entries past the retention bound happens inside the same
// write that stores the new one.
func (s *notificationServiceImpl) Enqueue(ctx context.Context, senderEmail, senderUsername string, req *dto.NotifyRequest) (string, error) {
	if req.To == "" || req.Message == "" {
		return "", apperrors.NewBadRequestError("Missing required fields")
	}

	notifType := req.Type
	if notifType == "" {
		notifType = models.NotificationTypeSystem
	}
	if senderUsername == "" {
		senderUsername = "Unknown"
	}

	notification := &models.Notification{
		ID:           uuid.New().String(),
		Message:      req.Message,
		Type:         notifType,
		FromEmail:    senderEmail,
		FromUsername: senderUsername,
		Timestamp:    time.Now().UTC(),
	}

	if err := s.notifications.Create(ctx, req.To, notification); err != nil {
		return "", apperrors.NewStorageError(err)
	}

	return notification.ID, nil
}

// Fetch returns the recipient's newest notifications, newest first
func (s *notificationServiceImpl) Fetch(ctx context.Context, email string) ([]dto.NotificationResponse, error) {
	notifications, err := s.notifications.FetchLatest(ctx, email)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:          n.ID,
			Message:     n.Message,
			Timestamp:   n.Timestamp.Format(time.RFC3339),
			Type:        n.Type,
			Sender:      n.FromUsername,
			SenderEmail: n.FromEmail,
		})
	}

	return responses, nil
}

// MarkHandled rewrites the original join_request notification after its
// request was resolved. The correlation id selects the exact notification;
// without one the match falls back to community substring + sender + type,
// which rewrites every match.
func (s *notificationServiceImpl) MarkHandled(ctx context.Context, ownerEmail string, req *dto.MarkHandledRequest) error {
	if req.Requester == "" || req.Community == "" ||
		(req.Decision != dto.DecisionAccept && req.Decision != dto.DecisionReject) {
		return apperrors.NewBadRequestError("Missing or invalid data")
	}

	newMessage := fmt.Sprintf("You %sed a request", req.Decision)

	if req.NotificationID != "" {
		if err := s.notifications.MarkHandledByID(ctx, ownerEmail, req.NotificationID, newMessage, models.NotificationTypeSystem); err != nil {
			return apperrors.NewStorageError(err)
		}
		return nil
	}

	if err := s.notifications.MarkHandledByMatch(ctx, ownerEmail, req.Requester, req.Community, newMessage, models.NotificationTypeSystem); err != nil {
		return apperrors.NewStorageError(err)
	}

	return nil
}
