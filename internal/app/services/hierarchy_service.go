package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// HierarchyStore persists the community-scoped CHILD_OF edges
type HierarchyStore interface {
	AddChild(ctx context.Context, community, fromUsername, toUsername string) error
	Leader(ctx context.Context, community string) (*models.TreeNode, error)
	Links(ctx context.Context, community string) ([]models.TreeLink, error)
	RemoveUser(ctx context.Context, community, username string) error
}

// HierarchyService maintains the leader-rooted tree under each community,
// independent of the membership edges
type HierarchyService interface {
	AddChild(ctx context.Context, community, fromUsername, toUsername string) error
	LeaderAndTree(ctx context.Context, community string) (*dto.LeaderTreeResponse, error)
	RemoveUser(ctx context.Context, community, username string) error
}

// hierarchyServiceImpl implements HierarchyService
type hierarchyServiceImpl struct {
	hierarchy HierarchyStore
	logger    zerolog.Logger
}

// NewHierarchyService creates a new HierarchyService
func NewHierarchyService(hierarchy HierarchyStore, logger zerolog.Logger) HierarchyService {
	return &hierarchyServiceImpl{
		hierarchy: hierarchy,
		logger:    logger,
	}
}

// AddChild links one user under another inside a community's tree. Both users
// and the community must already exist.
func (s *hierarchyServiceImpl) AddChild(ctx context.Context, community, fromUsername, toUsername string) error {
	if community == "" || fromUsername == "" || toUsername == "" {
		return apperrors.NewBadRequestError("Missing required fields")
	}

	if err := s.allowLink(community, fromUsername, toUsername); err != nil {
		return err
	}

	return s.hierarchy.AddChild(ctx, community, fromUsername, toUsername)
}

// allowLink is the single place where hierarchy shape policy lives. Cycles,
// multiple parents and membership of the endpoints are currently all
// permitted; tightening any of these is a one-function change.
func (s *hierarchyServiceImpl) allowLink(_, _, _ string) error {
	return nil
}

// LeaderAndTree returns the community's creator as leader plus every node and
// edge of its CHILD_OF forest. The leader is always part of the node set even
// with zero reports.
func (s *hierarchyServiceImpl) LeaderAndTree(ctx context.Context, community string) (*dto.LeaderTreeResponse, error) {
	if community == "" {
		return nil, apperrors.NewBadRequestError("Community name is required")
	}

	leader, err := s.hierarchy.Leader(ctx, community)
	if err != nil {
		return nil, err
	}

	links, err := s.hierarchy.Links(ctx, community)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	seen := map[string]bool{leader.Username: true}
	nodes := []models.TreeNode{*leader}
	edges := make([]models.TreeEdge, 0, len(links))

	for _, link := range links {
		if !seen[link.From.Username] {
			seen[link.From.Username] = true
			nodes = append(nodes, link.From)
		}
		if !seen[link.To.Username] {
			seen[link.To.Username] = true
			nodes = append(nodes, link.To)
		}
		edges = append(edges, models.TreeEdge{
			From: link.From.Username,
			To:   link.To.Username,
		})
	}

	return &dto.LeaderTreeResponse{
		Leader:        *leader,
		Nodes:         nodes,
		Relationships: edges,
	}, nil
}

// RemoveUser deletes the user's inbound and outbound CHILD_OF edges inside
// one community. The user node itself is never deleted by this service.
func (s *hierarchyServiceImpl) RemoveUser(ctx context.Context, community, username string) error {
	if community == "" || username == "" {
		return apperrors.NewBadRequestError("Missing required fields")
	}

	if err := s.hierarchy.RemoveUser(ctx, community, username); err != nil {
		return apperrors.NewStorageError(err)
	}

	s.logger.Debug().
		Str("community", community).
		Str("username", username).
		Msg("User removed from hierarchy")

	return nil
}
