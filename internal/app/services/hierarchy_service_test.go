package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

type fakeHierarchyStore struct {
	leader    *models.TreeNode
	leaderErr error
	links     []models.TreeLink
	added     [][3]string
	removed   [][2]string
}

func (f *fakeHierarchyStore) AddChild(_ context.Context, community, from, to string) error {
	f.added = append(f.added, [3]string{community, from, to})
	return nil
}

func (f *fakeHierarchyStore) Leader(_ context.Context, _ string) (*models.TreeNode, error) {
	if f.leaderErr != nil {
		return nil, f.leaderErr
	}
	return f.leader, nil
}

func (f *fakeHierarchyStore) Links(_ context.Context, _ string) ([]models.TreeLink, error) {
	return f.links, nil
}

func (f *fakeHierarchyStore) RemoveUser(_ context.Context, community, username string) error {
	f.removed = append(f.removed, [2]string{community, username})
	return nil
}

func TestAddChild(t *testing.T) {
	store := &fakeHierarchyStore{}
	svc := NewHierarchyService(store, zerolog.Nop())

	require.NoError(t, svc.AddChild(context.Background(), "gophers", "grace", "ada"))
	require.Len(t, store.added, 1)
	assert.Equal(t, [3]string{"gophers", "grace", "ada"}, store.added[0])
}

func TestAddChildValidation(t *testing.T) {
	svc := NewHierarchyService(&fakeHierarchyStore{}, zerolog.Nop())

	for _, args := range [][3]string{
		{"", "grace", "ada"},
		{"gophers", "", "ada"},
		{"gophers", "grace", ""},
	} {
		err := svc.AddChild(context.Background(), args[0], args[1], args[2])
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	}
}

func TestLeaderAndTree(t *testing.T) {
	store := &fakeHierarchyStore{
		leader: &models.TreeNode{Username: "ada", Name: "Ada Lovelace"},
		links: []models.TreeLink{
			{From: models.TreeNode{Username: "grace"}, To: models.TreeNode{Username: "ada", Name: "Ada Lovelace"}},
			{From: models.TreeNode{Username: "linus"}, To: models.TreeNode{Username: "grace"}},
		},
	}
	svc := NewHierarchyService(store, zerolog.Nop())

	tree, err := svc.LeaderAndTree(context.Background(), "gophers")
	require.NoError(t, err)

	assert.Equal(t, "ada", tree.Leader.Username)
	require.Len(t, tree.Nodes, 3, "each user appears once even across multiple edges")
	assert.Equal(t, "ada", tree.Nodes[0].Username, "the leader is always first in the node set")
	require.Len(t, tree.Relationships, 2)
	assert.Equal(t, models.TreeEdge{From: "grace", To: "ada"}, tree.Relationships[0])
	assert.Equal(t, models.TreeEdge{From: "linus", To: "grace"}, tree.Relationships[1])
}

func TestLeaderAndTreeLeaderOnly(t *testing.T) {
	store := &fakeHierarchyStore{leader: &models.TreeNode{Username: "ada"}}
	svc := NewHierarchyService(store, zerolog.Nop())

	tree, err := svc.LeaderAndTree(context.Background(), "gophers")
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 1)
	assert.Empty(t, tree.Relationships)
}

func TestLeaderAndTreeNoLeader(t *testing.T) {
	store := &fakeHierarchyStore{leaderErr: apperrors.ErrLeaderNotFound}
	svc := NewHierarchyService(store, zerolog.Nop())

	_, err := svc.LeaderAndTree(context.Background(), "gophers")
	assert.ErrorIs(t, err, apperrors.ErrLeaderNotFound)
}

func TestLeaderAndTreeMissingCommunity(t *testing.T) {
	svc := NewHierarchyService(&fakeHierarchyStore{}, zerolog.Nop())

	_, err := svc.LeaderAndTree(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRemoveUserFromHierarchy(t *testing.T) {
	store := &fakeHierarchyStore{}
	svc := NewHierarchyService(store, zerolog.Nop())

	require.NoError(t, svc.RemoveUser(context.Background(), "gophers", "grace"))
	require.Len(t, store.removed, 1)
	assert.Equal(t, [2]string{"gophers", "grace"}, store.removed[0])

	err := svc.RemoveUser(context.Background(), "", "grace")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
