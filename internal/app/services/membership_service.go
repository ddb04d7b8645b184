package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// rollbackAttempts bounds the compensation retries before the failure is
// recorded for manual reconciliation
const rollbackAttempts = 3

// rollbackBackoff is the pause between compensation retries
const rollbackBackoff = 100 * time.Millisecond

// fallbackDisplayName is used in notification bodies when the requester has
// no display name set
const fallbackDisplayName = "Unknown Person"

// JoinStateStore persists the membership edges of the saga
type JoinStateStore interface {
	ResolveJoinState(ctx context.Context, community, email string) (*models.JoinState, error)
	CreateRequest(ctx context.Context, email, community string) error
	DeleteRequest(ctx context.Context, email, community string) error
	Accept(ctx context.Context, requesterUsername, community string) error
	Reject(ctx context.Context, requesterUsername, community string) error
}

// DisplayNameStore resolves a user's display name for notification bodies
type DisplayNameStore interface {
	DisplayName(ctx context.Context, email string) (string, error)
}

// Notifier delivers notifications through the remote notification channel
type Notifier interface {
	Notify(ctx context.Context, token string, req dto.NotifyRequest) (string, error)
	MarkHandled(ctx context.Context, token string, req dto.MarkHandledRequest) error
}

// MembershipService orchestrates the join-request saga: the REQUESTED edge
// write, the cross-service notification, and the compensating delete when the
// notification cannot be delivered
type MembershipService interface {
	RequestJoin(ctx context.Context, requesterEmail, token, community string) error
	RespondToJoin(ctx context.Context, responderEmail, token string, req *dto.JoinResponseRequest) error
}

// membershipServiceImpl implements MembershipService
type membershipServiceImpl struct {
	memberships JoinStateStore
	users       DisplayNameStore
	notifier    Notifier
	logger      zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	memberships JoinStateStore,
	users DisplayNameStore,
	notifier Notifier,
	logger zerolog.Logger,
) MembershipService {
	return &membershipServiceImpl{
		memberships: memberships,
		users:       users,
		notifier:    notifier,
		logger:      logger,
	}
}

// RequestJoin runs the join saga for one (requester, community) pair.
//
// The REQUESTED edge write and the notification delivery are two network hops
// with no shared transaction. If the notification fails, the edge is deleted
// again so the externally visible effect of the failed call is a no-op.
func (s *membershipServiceImpl) RequestJoin(ctx context.Context, requesterEmail, token, community string) error {
	if community == "" {
		return apperrors.NewBadRequestError("Community name is required")
	}

	state, err := s.memberships.ResolveJoinState(ctx, community, requesterEmail)
	if err != nil {
		return err
	}

	// Conflict reasons are checked in a fixed priority order; the requester
	// sees the first matching one.
	switch {
	case state.AlreadyRequested:
		return apperrors.ErrAlreadyRequested
	case state.AlreadyMember:
		return apperrors.ErrAlreadyMember
	case state.IsCreator:
		return apperrors.ErrIsCreator
	}

	if err := s.memberships.CreateRequest(ctx, requesterEmail, community); err != nil {
		return apperrors.NewStorageError(err)
	}

	displayName, err := s.users.DisplayName(ctx, requesterEmail)
	if err != nil {
		s.compensateJoinRequest(ctx, requesterEmail, community)
		return apperrors.NewStorageError(err)
	}
	if displayName == "" {
		displayName = fallbackDisplayName
	}

	message := fmt.Sprintf("%s requested to join your community '%s'", displayName, community)
	_, err = s.notifier.Notify(ctx, token, dto.NotifyRequest{
		To:      state.CreatorEmail,
		Message: message,
		Type:    models.NotificationTypeJoinRequest,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("community", community).
			Str("requester", requesterEmail).
			Msg("Notification delivery failed, rolling back join request")
		s.compensateJoinRequest(ctx, requesterEmail, community)
		return apperrors.ErrNotifyFailed
	}

	return nil
}

// compensateJoinRequest deletes the REQUESTED edge created earlier in the
// saga. The delete is idempotent, so it is retried a bounded number of times;
// when every attempt fails an inconsistency record is logged for manual
// reconciliation and the original failure is the only error the caller sees.
func (s *membershipServiceImpl) compensateJoinRequest(ctx context.Context, email, community string) {
	var err error
	for attempt := 1; attempt <= rollbackAttempts; attempt++ {
		if err = s.memberships.DeleteRequest(ctx, email, community); err == nil {
			return
		}
		if attempt < rollbackAttempts {
			time.Sleep(rollbackBackoff)
		}
	}

	s.logger.Error().
		Str("event", "inconsistency").
		Str("user", email).
		Str("community", community).
		Err(err).
		Msg("Compensation failed after retries; a REQUESTED edge may survive a failed join request")
}

// RespondToJoin resolves a pending join request. The membership decision is
// final once persisted; the follow-up notifications are best-effort and never
// roll it back.
func (s *membershipServiceImpl) RespondToJoin(ctx context.Context, responderEmail, token string, req *dto.JoinResponseRequest) error {
	if req.Requester == "" || req.Community == "" ||
		(req.Decision != dto.DecisionAccept && req.Decision != dto.DecisionReject) {
		return apperrors.NewBadRequestError("Missing or invalid data")
	}

	if err := s.canRespond(ctx, responderEmail, req.Community); err != nil {
		return err
	}

	if req.Decision == dto.DecisionAccept {
		if err := s.memberships.Accept(ctx, req.Requester, req.Community); err != nil {
			return apperrors.NewStorageError(err)
		}
	} else {
		if err := s.memberships.Reject(ctx, req.Requester, req.Community); err != nil {
			return apperrors.NewStorageError(err)
		}
	}

	outcome := "rejected"
	if req.Decision == dto.DecisionAccept {
		outcome = "accepted"
	}
	message := fmt.Sprintf("Your request to join '%s' was %s", req.Community, outcome)
	if _, err := s.notifier.Notify(ctx, token, dto.NotifyRequest{
		To:      req.RequesterEmail,
		Message: message,
		Type:    models.NotificationTypeSystem,
	}); err != nil {
		s.logger.Warn().
			Err(err).
			Str("community", req.Community).
			Str("requester", req.Requester).
			Msg("Failed to notify requester of join decision")
	}

	if err := s.notifier.MarkHandled(ctx, token, dto.MarkHandledRequest{
		Requester:      req.Requester,
		Community:      req.Community,
		Decision:       req.Decision,
		NotificationID: req.NotificationID,
	}); err != nil {
		s.logger.Warn().
			Err(err).
			Str("community", req.Community).
			Str("requester", req.Requester).
			Msg("Failed to update original join request notification")
	}

	return nil
}

// canRespond is the single place where join-response authorization lives.
// It currently requires only a valid identity claim; whether the responder
// must be the community's creator is an open product question, so tightening
// the rule is a one-function change.
func (s *membershipServiceImpl) canRespond(_ context.Context, responderEmail, _ string) error {
	if responderEmail == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}
