// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/agentdesk/agentdesk/internal/domain/agent"
	"github.com/agentdesk/agentdesk/internal/domain/page"
)

// Store is the port interface for agent persistence. Every operation is
// scoped to the authenticated user carried in ctx; rows owned by another
// user are invisible to reads and untouchable by writes.
type Store interface {
	// GetAgent returns the agent with the given id when it belongs to the
	// caller, or domain.ErrNotFound otherwise.
	GetAgent(ctx context.Context, id string) (*agent.Agent, error)

	// ListAgents returns one page of the caller's agents matching the
	// optional name search, newest first, plus the unpaginated match count.
	ListAgents(ctx context.Context, req page.Request) ([]agent.Agent, int, error)

	// CreateAgent inserts a new agent owned by the caller and fills the
	// store-generated timestamps.
	CreateAgent(ctx context.Context, a *agent.Agent) error

	// UpdateAgent replaces the mutable attributes of an agent the caller
	// owns and refreshes a with the persisted row. Returns
	// domain.ErrNotFound when the id is absent or owned by another user.
	UpdateAgent(ctx context.Context, a *agent.Agent) error
}
