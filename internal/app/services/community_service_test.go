package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

type fakeCommunityStore struct {
	exists       bool
	existsErr    error
	createErr    error
	created      *models.Community
	creatorEmail string
	searchRows   []models.CommunitySearchRow
	searchQuery  string
	deleteErr    error
	deleted      string
	leader       *models.User
	members      []models.User
	removedUser  string
}

func (f *fakeCommunityStore) Exists(_ context.Context, _ string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeCommunityStore) Create(_ context.Context, creatorEmail string, community *models.Community) error {
	f.creatorEmail = creatorEmail
	f.created = community
	return f.createErr
}

func (f *fakeCommunityStore) Search(_ context.Context, search, _ string) ([]models.CommunitySearchRow, error) {
	f.searchQuery = search
	return f.searchRows, nil
}

func (f *fakeCommunityStore) Delete(_ context.Context, name string) error {
	f.deleted = name
	return f.deleteErr
}

func (f *fakeCommunityStore) Members(_ context.Context, _ string) (*models.User, []models.User, error) {
	return f.leader, f.members, nil
}

func (f *fakeCommunityStore) RemoveMember(_ context.Context, _, username string) error {
	f.removedUser = username
	return nil
}

func TestCreateCommunity(t *testing.T) {
	store := &fakeCommunityStore{}
	svc := NewCommunityService(store, zerolog.Nop())

	err := svc.Create(context.Background(), "ada@example.com", &dto.RegisterCommunityRequest{
		Name:  "gophers",
		Level: "2",
		Motto: "go fast",
	})
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, "ada@example.com", store.creatorEmail)
	assert.Equal(t, "gophers", store.created.Name)
	assert.Equal(t, 20, store.created.MaxSize)
	assert.False(t, store.created.CreatedAt.IsZero())
}

func TestCreateCommunityUnlimitedLevel(t *testing.T) {
	store := &fakeCommunityStore{}
	svc := NewCommunityService(store, zerolog.Nop())

	err := svc.Create(context.Background(), "ada@example.com", &dto.RegisterCommunityRequest{
		Name:  "everyone",
		Level: "4",
		Motto: "no limits",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UnlimitedSize, store.created.MaxSize)
}

func TestCreateCommunityValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterCommunityRequest
		wantErr error
	}{
		{"missing name", dto.RegisterCommunityRequest{Level: "1", Motto: "m"}, apperrors.ErrBadRequest},
		{"missing level", dto.RegisterCommunityRequest{Name: "n", Motto: "m"}, apperrors.ErrBadRequest},
		{"missing motto", dto.RegisterCommunityRequest{Name: "n", Level: "1"}, apperrors.ErrBadRequest},
		{"unknown level", dto.RegisterCommunityRequest{Name: "n", Level: "9", Motto: "m"}, apperrors.ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCommunityService(&fakeCommunityStore{}, zerolog.Nop())
			err := svc.Create(context.Background(), "ada@example.com", &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateCommunityNameTaken(t *testing.T) {
	store := &fakeCommunityStore{exists: true}
	svc := NewCommunityService(store, zerolog.Nop())

	err := svc.Create(context.Background(), "ada@example.com", &dto.RegisterCommunityRequest{
		Name:  "gophers",
		Level: "1",
		Motto: "m",
	})
	assert.ErrorIs(t, err, apperrors.ErrCommunityNameTaken)
	assert.Nil(t, store.created)
}

func TestSearchDerivesCanJoin(t *testing.T) {
	store := &fakeCommunityStore{
		searchRows: []models.CommunitySearchRow{
			{Name: "a", Creator: "x"},
			{Name: "b", Creator: "x", IsMember: true},
			{Name: "c", Creator: "x", IsCreator: true},
		},
	}
	svc := NewCommunityService(store, zerolog.Nop())

	results, err := svc.Search(context.Background(), "GoPhErS", "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, "gophers", store.searchQuery, "query is lowercased before matching")
	require.Len(t, results, 3)
	assert.True(t, results[0].CanJoin)
	assert.False(t, results[1].CanJoin)
	assert.False(t, results[2].CanJoin)
}

func TestSearchEmptyResultIsNotNil(t *testing.T) {
	svc := NewCommunityService(&fakeCommunityStore{}, zerolog.Nop())

	results, err := svc.Search(context.Background(), "nothing", "ada@example.com")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestDeleteCommunity(t *testing.T) {
	store := &fakeCommunityStore{}
	svc := NewCommunityService(store, zerolog.Nop())

	require.NoError(t, svc.Delete(context.Background(), "gophers"))
	assert.Equal(t, "gophers", store.deleted)

	err := svc.Delete(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeleteCommunityStorageFailure(t *testing.T) {
	store := &fakeCommunityStore{deleteErr: errors.New("graph down")}
	svc := NewCommunityService(store, zerolog.Nop())

	err := svc.Delete(context.Background(), "gophers")
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestMembers(t *testing.T) {
	store := &fakeCommunityStore{
		leader:  &models.User{Username: "ada", Email: "ada@example.com"},
		members: []models.User{{Username: "grace", Email: "grace@example.com"}},
	}
	svc := NewCommunityService(store, zerolog.Nop())

	resp, err := svc.Members(context.Background(), "gophers")
	require.NoError(t, err)
	assert.Equal(t, "ada", resp.Leader.Username)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, "grace", resp.Members[0].Username)
}

func TestMembersCommunityNotFound(t *testing.T) {
	svc := NewCommunityService(&fakeCommunityStore{}, zerolog.Nop())

	_, err := svc.Members(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrCommunityNotFound)
}

func TestRemoveMember(t *testing.T) {
	store := &fakeCommunityStore{}
	svc := NewCommunityService(store, zerolog.Nop())

	require.NoError(t, svc.RemoveMember(context.Background(), "gophers", "grace"))
	assert.Equal(t, "grace", store.removedUser)

	err := svc.RemoveMember(context.Background(), "gophers", "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
