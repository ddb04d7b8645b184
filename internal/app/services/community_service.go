package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// CommunityStore persists community nodes and their lifecycle edges
type CommunityStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, creatorEmail string, community *models.Community) error
	Search(ctx context.Context, search, callerEmail string) ([]models.CommunitySearchRow, error)
	Delete(ctx context.Context, name string) error
	Members(ctx context.Context, name string) (*models.User, []models.User, error)
	RemoveMember(ctx context.Context, name, username string) error
}

// CommunityService defines the community lifecycle operations
type CommunityService interface {
	Create(ctx context.Context, creatorEmail string, req *dto.RegisterCommunityRequest) error
	Search(ctx context.Context, query, callerEmail string) ([]dto.CommunitySearchResult, error)
	Delete(ctx context.Context, name string) error
	Members(ctx context.Context, name string) (*dto.MembersResponse, error)
	RemoveMember(ctx context.Context, name, username string) error
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	communities CommunityStore
	logger      zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(communities CommunityStore, logger zerolog.Logger) CommunityService {
	return &communityServiceImpl{
		communities: communities,
		logger:      logger,
	}
}

// Create validates the request, derives the member cap from the level, and
// creates the community with its CREATED edge. Community names are unique.
func (s *communityServiceImpl) Create(ctx context.Context, creatorEmail string, req *dto.RegisterCommunityRequest) error {
	if req.Name == "" || req.Level == "" || req.Motto == "" {
		return apperrors.NewBadRequestError("Missing required fields")
	}

	maxSize, ok := models.MaxSizeForLevel(req.Level)
	if !ok {
		return apperrors.ErrInvalidLevel
	}

	taken, err := s.communities.Exists(ctx, req.Name)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if taken {
		return apperrors.ErrCommunityNameTaken
	}

	community := &models.Community{
		Name:      req.Name,
		Level:     req.Level,
		Motto:     req.Motto,
		MaxSize:   maxSize,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.communities.Create(ctx, creatorEmail, community); err != nil {
		return apperrors.NewStorageError(err)
	}

	s.logger.Info().
		Str("community", community.Name).
		Str("level", community.Level).
		Str("creator", creatorEmail).
		Msg("Community registered")

	return nil
}

// Search matches community names case-insensitively and derives the caller's
// canJoin flag: joinable iff neither a member nor the creator
func (s *communityServiceImpl) Search(ctx context.Context, query, callerEmail string) ([]dto.CommunitySearchResult, error) {
	rows, err := s.communities.Search(ctx, strings.ToLower(query), callerEmail)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	results := make([]dto.CommunitySearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, dto.CommunitySearchResult{
			Name:    row.Name,
			Level:   row.Level,
			Motto:   row.Motto,
			Creator: row.Creator,
			CanJoin: !(row.IsMember || row.IsCreator),
		})
	}

	return results, nil
}

// Delete removes the community node, every membership edge touching it, and
// every CHILD_OF edge scoped to its name. User nodes stay.
func (s *communityServiceImpl) Delete(ctx context.Context, name string) error {
	if name == "" {
		return apperrors.NewBadRequestError("Community name is required")
	}

	if err := s.communities.Delete(ctx, name); err != nil {
		return apperrors.NewStorageError(err)
	}

	s.logger.Info().Str("community", name).Msg("Community deleted")

	return nil
}

// Members lists the community's leader and its active members
func (s *communityServiceImpl) Members(ctx context.Context, name string) (*dto.MembersResponse, error) {
	if name == "" {
		return nil, apperrors.NewBadRequestError("Community name is required")
	}

	leader, members, err := s.communities.Members(ctx, name)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	if leader == nil {
		return nil, apperrors.ErrCommunityNotFound
	}

	resp := &dto.MembersResponse{
		Leader: &dto.MemberResponse{
			Username: leader.Username,
			Name:     leader.Name,
			Email:    leader.Email,
		},
		Members: make([]dto.MemberResponse, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, dto.MemberResponse{
			Username: m.Username,
			Name:     m.Name,
			Email:    m.Email,
		})
	}

	return resp, nil
}

// RemoveMember revokes one user's membership, leaving the user node intact
func (s *communityServiceImpl) RemoveMember(ctx context.Context, name, username string) error {
	if name == "" || username == "" {
		return apperrors.NewBadRequestError("Missing required fields")
	}

	if err := s.communities.RemoveMember(ctx, name, username); err != nil {
		return apperrors.NewStorageError(err)
	}

	return nil
}
