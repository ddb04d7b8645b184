package models

import "time"

// User represents a user node in the community graph. The email is the
// identity key and is set once; every other field is free-form profile data.
// User nodes are created lazily the first time any operation references them.
type User struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Name        string `json:"name,omitempty"`
	PublicEmail string `json:"public_email,omitempty"`
	Dob         string `json:"dob,omitempty"`
	Age         string `json:"age,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Location    string `json:"location,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Linkedin    string `json:"linkedin,omitempty"`
	Github      string `json:"github,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Website     string `json:"website,omitempty"`
}

// Community represents a community node, keyed by name
type Community struct {
	Name      string    `json:"name"`
	Level     string    `json:"level"`
	Motto     string    `json:"motto"`
	MaxSize   int       `json:"max_size"`
	CreatedAt time.Time `json:"created_at"`
}

// UnlimitedSize marks a community with no member cap
const UnlimitedSize = -1

// levelMaxSizes is the fixed level-to-capacity lookup table
var levelMaxSizes = map[string]int{
	"1": 10,
	"2": 20,
	"3": 30,
	"4": UnlimitedSize,
}

// MaxSizeForLevel returns the member cap for a community level.
// The second return value is false for unknown levels.
func MaxSizeForLevel(level string) (int, bool) {
	size, ok := levelMaxSizes[level]
	return size, ok
}

// Notification types
const (
	NotificationTypeSystem      = "system"
	NotificationTypeJoinRequest = "join_request"
)

// Notification represents a notification node owned by exactly one user.
// ID is the correlation identifier assigned at creation time.
type Notification struct {
	ID           string    `json:"id"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	FromEmail    string    `json:"from_email"`
	FromUsername string    `json:"from_username"`
	Timestamp    time.Time `json:"timestamp"`
}

// JoinState captures a requester's current edge state with respect to one
// community, resolved in a single read
type JoinState struct {
	CreatorEmail     string
	AlreadyRequested bool
	AlreadyMember    bool
	IsCreator        bool
}

// CommunitySearchRow is one community search hit together with the caller's
// relationship to it, resolved in the same read
type CommunitySearchRow struct {
	Name      string
	Level     string
	Motto     string
	Creator   string
	IsMember  bool
	IsCreator bool
}

// TreeNode is one endpoint in a community's hierarchy
type TreeNode struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// TreeEdge is one CHILD_OF link between two users inside a community
type TreeEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TreeLink is a CHILD_OF edge with both endpoint nodes attached, as retrieved
// from the graph before deduplication
type TreeLink struct {
	From TreeNode
	To   TreeNode
}
