package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/db"
)

// MaxRetainedNotifications is the per-user retention bound. The eviction runs
// inside the same write that creates a notification, so a committed read never
// observes more than this many.
const MaxRetainedNotifications = 20

// NotificationRepository handles graph operations for the notification channel
type NotificationRepository struct {
	graph *db.Graph
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(graph *db.Graph) *NotificationRepository {
	return &NotificationRepository{graph: graph}
}

// Create merges the recipient, attaches the notification, and evicts
// everything past the newest MaxRetainedNotifications in one transaction
func (r *NotificationRepository) Create(ctx context.Context, recipientEmail string, notification *models.Notification) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MERGE (u:%[1]s {email: $receiver})
		CREATE (n:%[2]s {
			id: $id,
			message: $message,
			type: $type,
			from_email: $from_email,
			from_username: $from_username,
			timestamp: datetime($timestamp)
		})
		CREATE (u)-[:%[3]s]->(n)

		WITH u
		MATCH (u)-[r:%[3]s]->(old:%[2]s)
		WITH r, old ORDER BY old.timestamp DESC
		SKIP $retained
		DELETE r, old
	`, db.LabelNotificationUser, db.LabelNotification, db.RelHasNotification)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		return tx.Run(ctx, query, map[string]interface{}{
			"receiver":      recipientEmail,
			"id":            notification.ID,
			"message":       notification.Message,
			"type":          notification.Type,
			"from_email":    notification.FromEmail,
			"from_username": notification.FromUsername,
			"timestamp":     notification.Timestamp.Format(time.RFC3339Nano),
			"retained":      MaxRetainedNotifications,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// FetchLatest returns the user's most recent notifications, newest first,
// capped at the retention bound. Read-only.
func (r *NotificationRepository) FetchLatest(ctx context.Context, email string) ([]models.Notification, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:%s {email: $email})-[:%s]->(n:%s)
		RETURN
			n.id AS id,
			n.message AS message,
			n.timestamp AS timestamp,
			n.type AS type,
			n.from_username AS sender,
			n.from_email AS sender_email
		ORDER BY n.timestamp DESC
		LIMIT $limit
	`, db.LabelNotificationUser, db.RelHasNotification, db.LabelNotification)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"email": email,
		"limit": MaxRetainedNotifications,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	var notifications []models.Notification
	for result.Next(ctx) {
		record := result.Record()
		notifications = append(notifications, models.Notification{
			ID:           recordString(record, "id"),
			Message:      recordString(record, "message"),
			Type:         recordString(record, "type"),
			FromUsername: recordString(record, "sender"),
			FromEmail:    recordString(record, "sender_email"),
			Timestamp:    recordTime(record, "timestamp"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

// MarkHandledByID rewrites exactly the notification with the given
// correlation id, provided it belongs to the owner
func (r *NotificationRepository) MarkHandledByID(ctx context.Context, ownerEmail, notificationID, newMessage, newType string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:%s {email: $owner})-[:%s]->(n:%s {id: $id})
		SET n.message = $new_msg
		SET n.type = $new_type
		SET n.timestamp = datetime()
	`, db.LabelNotificationUser, db.RelHasNotification, db.LabelNotification)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"owner":    ownerEmail,
		"id":       notificationID,
		"new_msg":  newMessage,
		"new_type": newType,
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification handled: %w", err)
	}

	return nil
}

// MarkHandledByMatch rewrites every notification owned by the owner whose
// message contains the community name, whose sender matches, and whose type
// is join_request. Kept for callers that do not carry the correlation id;
// multiple matches are all rewritten.
func (r *NotificationRepository) MarkHandledByMatch(ctx context.Context, ownerEmail, requesterUsername, community, newMessage, newType string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:%s {email: $owner})-[:%s]->(n:%s)
		WHERE n.message CONTAINS $community
			AND n.from_username = $requester
			AND n.type = $join_type
		SET n.message = $new_msg
		SET n.type = $new_type
		SET n.timestamp = datetime()
	`, db.LabelNotificationUser, db.RelHasNotification, db.LabelNotification)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"owner":     ownerEmail,
		"community": community,
		"requester": requesterUsername,
		"join_type": models.NotificationTypeJoinRequest,
		"new_msg":   newMessage,
		"new_type":  newType,
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification handled: %w", err)
	}

	return nil
}
