package db

import (
	"fmt"
	"regexp"
)

// Schema binding: the fixed mapping from logical entity names to the physical
// labels and relationship types stored in the graph. Queries build their label
// fragments from these constants only, never from request input.

// Node labels
const (
	// LabelUser is the label for user nodes in the community database
	LabelUser = "UserNode"

	// LabelCommunity is the label for community nodes
	LabelCommunity = "Community"

	// LabelNotificationUser is the label for user nodes in the notification database
	LabelNotificationUser = "NotificationUser"

	// LabelNotification is the label for notification nodes
	LabelNotification = "Notification"
)

// Relationship types
const (
	// RelCreated links a community's leader to the community, exactly one per community
	RelCreated = "CREATED"

	// RelRequested marks a pending join request, at most one per user per community
	RelRequested = "REQUESTED"

	// RelMemberOf marks an active membership, at most one per user per community
	RelMemberOf = "MEMBER_OF"

	// RelChildOf is the user-to-user hierarchy edge, scoped by a community property
	RelChildOf = "CHILD_OF"

	// RelHasNotification links a notification to its owning user
	RelHasNotification = "HAS_NOTIFICATION"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateSchema checks every label and relationship type against the Cypher
// identifier pattern. Called once at startup; a failure here means a bad build,
// not bad input.
func ValidateSchema() error {
	identifiers := []string{
		LabelUser,
		LabelCommunity,
		LabelNotificationUser,
		LabelNotification,
		RelCreated,
		RelRequested,
		RelMemberOf,
		RelChildOf,
		RelHasNotification,
	}

	for _, ident := range identifiers {
		if !identifierPattern.MatchString(ident) {
			return fmt.Errorf("invalid schema identifier %q", ident)
		}
	}

	return nil
}
