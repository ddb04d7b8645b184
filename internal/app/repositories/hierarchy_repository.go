package repositories

import (
	"context"
	"fmt"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/db"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// HierarchyRepository handles the community-scoped CHILD_OF edges between
// user nodes
type HierarchyRepository struct {
	graph *db.Graph
}

// NewHierarchyRepository creates a new HierarchyRepository
func NewHierarchyRepository(graph *db.Graph) *HierarchyRepository {
	return &HierarchyRepository{graph: graph}
}

// AddChild merges a CHILD_OF edge scoped to the community. Both users and the
// community must already exist; returns ErrUserNotFound otherwise.
func (r *HierarchyRepository) AddChild(ctx context.Context, community, fromUsername, toUsername string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%[1]s {name: $community})
		MATCH (f:%[2]s {username: $from})
		MATCH (t:%[2]s {username: $to})
		MERGE (f)-[:%[3]s {community: $community}]->(t)
		RETURN f.username AS linked
	`, db.LabelCommunity, db.LabelUser, db.RelChildOf)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"community": community,
		"from":      fromUsername,
		"to":        toUsername,
	})
	if err != nil {
		return fmt.Errorf("failed to create hierarchy edge: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to read hierarchy edge result: %w", err)
		}
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Leader returns the community's creator. Returns ErrLeaderNotFound when the
// community has no CREATED edge.
func (r *HierarchyRepository) Leader(ctx context.Context, community string) (*models.TreeNode, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%s {name: $community})<-[:%s]-(leader:%s)
		RETURN leader.username AS username, leader.name AS name
	`, db.LabelCommunity, db.RelCreated, db.LabelUser)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"community": community,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leader: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to read leader: %w", err)
		}
		return nil, apperrors.ErrLeaderNotFound
	}

	record := result.Record()
	return &models.TreeNode{
		Username: recordString(record, "username"),
		Name:     recordString(record, "name"),
	}, nil
}

// Links returns every CHILD_OF edge scoped to the community together with
// both endpoint nodes, in natural retrieval order
func (r *HierarchyRepository) Links(ctx context.Context, community string) ([]models.TreeLink, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (a:%[1]s)-[r:%[2]s {community: $community}]->(b:%[1]s)
		RETURN
			a.username AS from_username,
			a.name AS from_name,
			b.username AS to_username,
			b.name AS to_name
	`, db.LabelUser, db.RelChildOf)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"community": community,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hierarchy edges: %w", err)
	}

	var links []models.TreeLink
	for result.Next(ctx) {
		record := result.Record()
		links = append(links, models.TreeLink{
			From: models.TreeNode{
				Username: recordString(record, "from_username"),
				Name:     recordString(record, "from_name"),
			},
			To: models.TreeNode{
				Username: recordString(record, "to_username"),
				Name:     recordString(record, "to_name"),
			},
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hierarchy edges: %w", err)
	}

	return links, nil
}

// RemoveUser deletes both inbound and outbound CHILD_OF edges scoped to the
// community that touch the given user. The user node itself stays.
func (r *HierarchyRepository) RemoveUser(ctx context.Context, community, username string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:%s {username: $username})-[r:%s {community: $community}]-()
		DELETE r
	`, db.LabelUser, db.RelChildOf)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"username":  username,
		"community": community,
	})
	if err != nil {
		return fmt.Errorf("failed to remove user from hierarchy: %w", err)
	}

	return nil
}
