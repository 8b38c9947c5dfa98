package postgres

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agentdesk/agentdesk/internal/domain/agent"
	"github.com/agentdesk/agentdesk/internal/domain/page"
)

// GetAgent retrieves an agent by ID, scoped to the caller. Absent rows and
// rows owned by another user are both reported as domain.ErrNotFound.
func (s *Store) GetAgent(ctx context.Context, id string) (*agent.Agent, error) {
	const q = `
		SELECT id, name, instructions, user_id, created_at, updated_at
		FROM agents
		WHERE id = $1 AND user_id = $2`

	var a agent.Agent
	err := s.pool.QueryRow(ctx, q, id, userFromCtx(ctx)).Scan(
		&a.ID, &a.Name, &a.Instructions, &a.UserID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundWrap(err, "get agent %s", id)
	}
	return &a, nil
}

// ListAgents returns one page of the caller's agents matching the optional
// name search, ordered newest first with id as tie-break, plus the count of
// all matching rows. The window and the count are two independent queries
// run concurrently; a write landing between them can skew the count by one.
// That window is accepted, matching the documented weak-consistency model.
func (s *Store) ListAgents(ctx context.Context, req page.Request) ([]agent.Agent, int, error) {
	const listQ = `
		SELECT id, name, instructions, user_id, created_at, updated_at
		FROM agents
		WHERE user_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`

	const countQ = `
		SELECT count(*)
		FROM agents
		WHERE user_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	userID := userFromCtx(ctx)

	var (
		items []agent.Agent
		total int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.pool.Query(gctx, listQ, userID, req.Search, req.PageSize, req.Offset())
		if err != nil {
			return fmt.Errorf("list agents: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var a agent.Agent
			if err := rows.Scan(
				&a.ID, &a.Name, &a.Instructions, &a.UserID, &a.CreatedAt, &a.UpdatedAt,
			); err != nil {
				return fmt.Errorf("scan agent: %w", err)
			}
			items = append(items, a)
		}
		return rows.Err()
	})

	g.Go(func() error {
		if err := s.pool.QueryRow(gctx, countQ, userID, req.Search).Scan(&total); err != nil {
			return fmt.Errorf("count agents: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CreateAgent inserts a new agent owned by the caller. The owner comes from
// the context, never from the record, so it cannot be spoofed.
func (s *Store) CreateAgent(ctx context.Context, a *agent.Agent) error {
	const q = `
		INSERT INTO agents (id, name, instructions, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, created_at, updated_at`

	err := s.pool.QueryRow(ctx, q, a.ID, a.Name, a.Instructions, userFromCtx(ctx)).Scan(
		&a.UserID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}
	return nil
}

// UpdateAgent replaces the mutable attributes of an agent the caller owns
// and refreshes a with the persisted row. id, user_id and created_at are
// never touched.
func (s *Store) UpdateAgent(ctx context.Context, a *agent.Agent) error {
	const q = `
		UPDATE agents
		SET name = $2, instructions = $3, updated_at = now()
		WHERE id = $1 AND user_id = $4
		RETURNING user_id, created_at, updated_at`

	err := s.pool.QueryRow(ctx, q, a.ID, a.Name, a.Instructions, userFromCtx(ctx)).Scan(
		&a.UserID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return notFoundWrap(err, "update agent %s", a.ID)
	}
	return nil
}
