package repositories

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/db"
)

// UserRepository handles graph operations for user nodes
type UserRepository struct {
	graph *db.Graph
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(graph *db.Graph) *UserRepository {
	return &UserRepository{graph: graph}
}

// MergeOnKey creates the user node if absent, keyed by email, and returns its
// profile fields. This is the lazy-creation path every operation relies on.
func (r *UserRepository) MergeOnKey(ctx context.Context, email, username string) (*models.User, error) {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MERGE (u:%s {email: $email})
		ON CREATE SET u.public_email = $email, u.username = $username
		RETURN u
	`, db.LabelUser)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"email":    email,
		"username": username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to merge user: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged user: %w", err)
	}

	value, _ := record.Get("u")
	node, ok := value.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected record shape for user %s", email)
	}

	return &models.User{
		Email:       email,
		Username:    nodeString(node, "username"),
		Name:        nodeString(node, "name"),
		PublicEmail: nodeString(node, "public_email"),
		Dob:         nodeString(node, "dob"),
		Age:         nodeString(node, "age"),
		Phone:       nodeString(node, "phone"),
		Gender:      nodeString(node, "gender"),
		Location:    nodeString(node, "location"),
		Bio:         nodeString(node, "bio"),
		Linkedin:    nodeString(node, "linkedin"),
		Github:      nodeString(node, "github"),
		Twitter:     nodeString(node, "twitter"),
		Website:     nodeString(node, "website"),
	}, nil
}

// DisplayName returns the user's display name, or "" when the user or the
// name property is absent
func (r *UserRepository) DisplayName(ctx context.Context, email string) (string, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:%s {email: $email})
		RETURN u.name AS name
	`, db.LabelUser)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch display name: %w", err)
	}

	if result.Next(ctx) {
		return recordString(result.Record(), "name"), nil
	}

	return "", nil
}
