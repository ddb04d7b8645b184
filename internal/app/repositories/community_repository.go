package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/db"
)

// CommunityRepository handles graph operations for community nodes and their
// lifecycle edges
type CommunityRepository struct {
	graph *db.Graph
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(graph *db.Graph) *CommunityRepository {
	return &CommunityRepository{graph: graph}
}

// Exists reports whether a community with the given name exists
func (r *CommunityRepository) Exists(ctx context.Context, name string) (bool, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%s {name: $name})
		RETURN count(c) > 0 AS exists
	`, db.LabelCommunity)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check community existence: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read existence check: %w", err)
	}

	return recordBool(record, "exists"), nil
}

// Create creates the community node and its CREATED edge from the (merged)
// creator in one write
func (r *CommunityRepository) Create(ctx context.Context, creatorEmail string, community *models.Community) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MERGE (u:%s {email: $creator_email})
		CREATE (c:%s {
			name: $name,
			level: $level,
			motto: $motto,
			max_size: $max_size,
			created_at: datetime($created_at)
		})
		MERGE (u)-[:%s]->(c)
	`, db.LabelUser, db.LabelCommunity, db.RelCreated)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"creator_email": creatorEmail,
		"name":          community.Name,
		"level":         community.Level,
		"motto":         community.Motto,
		"max_size":      community.MaxSize,
		"created_at":    community.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to create community: %w", err)
	}

	return nil
}

// Search performs a case-insensitive substring match on community names and
// resolves the caller's relationship to each hit in the same read
func (r *CommunityRepository) Search(ctx context.Context, search, callerEmail string) ([]models.CommunitySearchRow, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%[1]s)<-[:%[2]s]-(u:%[3]s)
		WHERE toLower(c.name) CONTAINS $search
		OPTIONAL MATCH (u2:%[3]s {email: $current_user})
		RETURN
			c.name AS name,
			c.level AS level,
			c.motto AS motto,
			u.name AS creator,
			EXISTS { (u2)-[:%[4]s]->(c) } AS is_member,
			u.email = $current_user AS is_creator
		ORDER BY c.name
	`, db.LabelCommunity, db.RelCreated, db.LabelUser, db.RelMemberOf)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"search":       search,
		"current_user": callerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search communities: %w", err)
	}

	var rows []models.CommunitySearchRow
	for result.Next(ctx) {
		record := result.Record()
		rows = append(rows, models.CommunitySearchRow{
			Name:      recordString(record, "name"),
			Level:     recordString(record, "level"),
			Motto:     recordString(record, "motto"),
			Creator:   recordString(record, "creator"),
			IsMember:  recordBool(record, "is_member"),
			IsCreator: recordBool(record, "is_creator"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search results: %w", err)
	}

	return rows, nil
}

// Delete removes a community in two steps inside one transaction: first every
// CHILD_OF edge carrying the community's name (graph-wide, since those edges
// connect users to users), then the community node itself with all edges
// touching it.
func (r *CommunityRepository) Delete(ctx context.Context, name string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		edgeQuery := fmt.Sprintf(`
			MATCH (:%[1]s)-[r:%[2]s {community: $name}]->(:%[1]s)
			DELETE r
		`, db.LabelUser, db.RelChildOf)

		if _, err := tx.Run(ctx, edgeQuery, map[string]interface{}{"name": name}); err != nil {
			return nil, fmt.Errorf("failed to delete hierarchy edges: %w", err)
		}

		nodeQuery := fmt.Sprintf(`
			MATCH (c:%s {name: $name})
			DETACH DELETE c
		`, db.LabelCommunity)

		if _, err := tx.Run(ctx, nodeQuery, map[string]interface{}{"name": name}); err != nil {
			return nil, fmt.Errorf("failed to delete community node: %w", err)
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete community: %w", err)
	}

	return nil
}

// Members returns the community's leader and its active members
func (r *CommunityRepository) Members(ctx context.Context, name string) (*models.User, []models.User, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%[1]s {name: $name})<-[:%[2]s]-(leader:%[3]s)
		OPTIONAL MATCH (m:%[3]s)-[:%[4]s]->(c)
		RETURN
			leader.username AS leader_username,
			leader.name AS leader_name,
			leader.email AS leader_email,
			m.username AS member_username,
			m.name AS member_name,
			m.email AS member_email
	`, db.LabelCommunity, db.RelCreated, db.LabelUser, db.RelMemberOf)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	var leader *models.User
	var members []models.User
	for result.Next(ctx) {
		record := result.Record()
		if leader == nil {
			leader = &models.User{
				Username: recordString(record, "leader_username"),
				Name:     recordString(record, "leader_name"),
				Email:    recordString(record, "leader_email"),
			}
		}
		if username := recordString(record, "member_username"); username != "" {
			members = append(members, models.User{
				Username: username,
				Name:     recordString(record, "member_name"),
				Email:    recordString(record, "member_email"),
			})
		}
	}
	if err := result.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return leader, members, nil
}

// RemoveMember deletes the MEMBER_OF edge between a user and a community,
// leaving both nodes intact
func (r *CommunityRepository) RemoveMember(ctx context.Context, name, username string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:%s {username: $username})-[r:%s]->(c:%s {name: $name})
		DELETE r
	`, db.LabelUser, db.RelMemberOf, db.LabelCommunity)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"username": username,
		"name":     name,
	})
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
