package repositories

import (
	"context"
	"fmt"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/db"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// MembershipRepository handles the REQUESTED and MEMBER_OF edges between
// users and communities
type MembershipRepository struct {
	graph *db.Graph
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(graph *db.Graph) *MembershipRepository {
	return &MembershipRepository{graph: graph}
}

// ResolveJoinState resolves the community's creator and the requester's
// current edge state in one read. Returns ErrCommunityNotFound when the
// community (or its creator) is absent.
func (r *MembershipRepository) ResolveJoinState(ctx context.Context, community, email string) (*models.JoinState, error) {
	session := r.graph.ReadSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%[1]s {name: $name})<-[:%[2]s]-(creator:%[3]s)
		OPTIONAL MATCH (u:%[3]s {email: $email})
		RETURN
			creator.email AS creator_email,
			EXISTS { (u)-[:%[4]s]->(c) } AS already_requested,
			EXISTS { (u)-[:%[5]s]->(c) } AS already_member,
			creator.email = $email AS is_creator
	`, db.LabelCommunity, db.RelCreated, db.LabelUser, db.RelRequested, db.RelMemberOf)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"name":  community,
		"email": email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve join state: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to read join state: %w", err)
		}
		return nil, apperrors.ErrCommunityNotFound
	}

	record := result.Record()
	return &models.JoinState{
		CreatorEmail:     recordString(record, "creator_email"),
		AlreadyRequested: recordBool(record, "already_requested"),
		AlreadyMember:    recordBool(record, "already_member"),
		IsCreator:        recordBool(record, "is_creator"),
	}, nil
}

// CreateRequest merges the REQUESTED edge between requester and community.
// Merge semantics make re-running this step safe.
func (r *MembershipRepository) CreateRequest(ctx context.Context, email, community string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MERGE (u:%s {email: $email})
		MERGE (c:%s {name: $name})
		MERGE (u)-[:%s]->(c)
	`, db.LabelUser, db.LabelCommunity, db.RelRequested)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"email": email,
		"name":  community,
	})
	if err != nil {
		return fmt.Errorf("failed to create join request: %w", err)
	}

	return nil
}

// DeleteRequest removes the REQUESTED edge. Deleting an edge that is already
// gone is a no-op, so the compensation path can call this repeatedly.
func (r *MembershipRepository) DeleteRequest(ctx context.Context, email, community string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (u:%s {email: $email})-[r:%s]->(c:%s {name: $name})
		DELETE r
	`, db.LabelUser, db.RelRequested, db.LabelCommunity)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"email": email,
		"name":  community,
	})
	if err != nil {
		return fmt.Errorf("failed to delete join request: %w", err)
	}

	return nil
}

// Accept deletes the REQUESTED edge and creates MEMBER_OF in a single
// statement: both effects or neither
func (r *MembershipRepository) Accept(ctx context.Context, requesterUsername, community string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%s {name: $community})
		MATCH (u:%s {username: $requester})-[req:%s]->(c)
		DELETE req
		MERGE (u)-[:%s]->(c)
	`, db.LabelCommunity, db.LabelUser, db.RelRequested, db.RelMemberOf)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"community": community,
		"requester": requesterUsername,
	})
	if err != nil {
		return fmt.Errorf("failed to accept join request: %w", err)
	}

	return nil
}

// Reject deletes the REQUESTED edge only
func (r *MembershipRepository) Reject(ctx context.Context, requesterUsername, community string) error {
	session := r.graph.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (c:%s {name: $community})
		MATCH (u:%s {username: $requester})-[req:%s]->(c)
		DELETE req
	`, db.LabelCommunity, db.LabelUser, db.RelRequested)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"community": community,
		"requester": requesterUsername,
	})
	if err != nil {
		return fmt.Errorf("failed to reject join request: %w", err)
	}

	return nil
}
