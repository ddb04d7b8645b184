package dto

// NotifyRequest is the payload for delivering a notification to a user
type NotifyRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NotifyResponse acknowledges a delivered notification and returns its
// correlation identifier
type NotifyResponse struct {
	Message        string `json:"message"`
	NotificationID string `json:"notification_id"`
}

// NotificationResponse is one entry of a user's notification feed
type NotificationResponse struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Type        string `json:"type"`
	Sender      string `json:"sender"`
	SenderEmail string `json:"sender_email"`
}

// MarkHandledRequest rewrites a join_request notification after resolution.
// NotificationID selects the exact notification when present; otherwise the
// match falls back to community substring + sender + type.
type MarkHandledRequest struct {
	Requester      string `json:"requester"`
	Community      string `json:"community"`
	Decision       string `json:"decision"`
	NotificationID string `json:"notification_id,omitempty"`
}
