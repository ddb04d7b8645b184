package dto

import "github.com/communitree/backend/internal/app/models"

// CreateChildOfRequest links one user under another inside a community's tree
type CreateChildOfRequest struct {
	Community string `json:"community"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// DeleteUserNodeRequest removes a user's hierarchy edges inside one community
type DeleteUserNodeRequest struct {
	Community string `json:"community"`
	Username  string `json:"username"`
}

// LeaderTreeResponse is the full hierarchy of one community: the leader plus
// every node and edge in its CHILD_OF forest
type LeaderTreeResponse struct {
	Leader        models.TreeNode   `json:"leader"`
	Nodes         []models.TreeNode `json:"nodes"`
	Relationships []models.TreeEdge `json:"relationships"`
}
