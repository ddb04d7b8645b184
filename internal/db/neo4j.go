package db

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/communitree/backend/internal/config"
)

// Graph holds the graph store driver and the database it operates on.
// It is opened once at process start and injected into repositories.
type Graph struct {
	Driver   neo4j.DriverWithContext
	Database string
}

// NewGraph creates a new graph store connection and verifies it is reachable
func NewGraph(cfg *config.Config) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4j.URI,
		neo4j.BasicAuth(cfg.Neo4j.Username, cfg.Neo4j.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach graph store: %w", err)
	}

	return &Graph{
		Driver:   driver,
		Database: cfg.Neo4j.Database,
	}, nil
}

// Close closes the underlying driver. Called once at process shutdown.
func (g *Graph) Close(ctx context.Context) error {
	return g.Driver.Close(ctx)
}

// WriteSession opens a session bound to the configured database for writes
func (g *Graph) WriteSession(ctx context.Context) neo4j.SessionWithContext {
	return g.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: g.Database,
	})
}

// ReadSession opens a session bound to the configured database for reads
func (g *Graph) ReadSession(ctx context.Context) neo4j.SessionWithContext {
	return g.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: g.Database,
	})
}

// EnsureConstraints creates the uniqueness constraints the data model relies on.
// Community names are unique by decision, not just by convention.
func (g *Graph) EnsureConstraints(ctx context.Context) error {
	session := g.WriteSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(
		"CREATE CONSTRAINT community_name_unique IF NOT EXISTS FOR (c:%s) REQUIRE c.name IS UNIQUE",
		LabelCommunity,
	)
	if _, err := session.Run(ctx, query, nil); err != nil {
		return fmt.Errorf("failed to ensure community name constraint: %w", err)
	}

	return nil
}
