package dto

// Join decisions
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// JoinRequest is the payload for requesting to join a community
type JoinRequest struct {
	Community string `json:"community"`
}

// JoinResponseRequest is the payload for resolving a pending join request.
// NotificationID optionally correlates the original join_request notification
// so the channel can rewrite exactly that one.
type JoinResponseRequest struct {
	Requester      string `json:"requester"`
	RequesterEmail string `json:"requester_email"`
	Community      string `json:"community"`
	Decision       string `json:"decision"`
	NotificationID string `json:"notification_id,omitempty"`
}
