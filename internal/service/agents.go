package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	adotel "github.com/agentdesk/agentdesk/internal/adapter/otel"
	"github.com/agentdesk/agentdesk/internal/domain/agent"
	"github.com/agentdesk/agentdesk/internal/domain/page"
	"github.com/agentdesk/agentdesk/internal/port/database"
)

// AgentService handles the agent collection: paginated queries and
// validated mutations, all scoped to the authenticated caller.
type AgentService struct {
	store   database.Store
	metrics *adotel.Metrics
}

// NewAgentService creates a new AgentService.
func NewAgentService(store database.Store) *AgentService {
	return &AgentService{store: store}
}

// SetMetrics attaches operation counters. Optional; nil-safe.
func (s *AgentService) SetMetrics(m *adotel.Metrics) {
	s.metrics = m
}

// GetOne returns the caller's agent with the given id, or
// domain.ErrNotFound when the id is absent or owned by another user.
func (s *AgentService) GetOne(ctx context.Context, id string) (*agent.Agent, error) {
	ctx, span := adotel.StartQuerySpan(ctx, "agents.get_one", id)
	defer span.End()

	a, err := s.store.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	a.MeetingsCount = agent.PlaceholderMeetingsCount
	return a, nil
}

// GetMany returns one page of the caller's agents, newest first, filtered
// by the optional case-insensitive name search, plus total-count metadata.
func (s *AgentService) GetMany(ctx context.Context, req page.Request) (page.Result[agent.Agent], error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return page.Result[agent.Agent]{}, err
	}

	ctx, span := adotel.StartListSpan(ctx, req.Page, req.PageSize, req.Search != "")
	defer span.End()

	items, total, err := s.store.ListAgents(ctx, req)
	if err != nil {
		return page.Result[agent.Agent]{}, fmt.Errorf("list agents: %w", err)
	}
	for i := range items {
		items[i].MeetingsCount = agent.PlaceholderMeetingsCount
	}

	if s.metrics != nil {
		s.metrics.AgentQueries.Add(ctx, 1)
	}

	return page.NewResult(items, total, req.PageSize), nil
}

// Create validates the payload and inserts a new agent owned by the
// caller. The owner is never taken from the request.
func (s *AgentService) Create(ctx context.Context, req agent.CreateRequest) (*agent.Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := adotel.StartMutationSpan(ctx, "agents.create", "")
	defer span.End()

	a := &agent.Agent{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Instructions: req.Instructions,
	}

	if err := s.store.CreateAgent(ctx, a); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	a.MeetingsCount = agent.PlaceholderMeetingsCount

	if s.metrics != nil {
		s.metrics.AgentsCreated.Add(ctx, 1)
	}

	return a, nil
}

// Update validates the payload and replaces the mutable attributes of an
// agent the caller owns. Identity, owner and creation time never change.
func (s *AgentService) Update(ctx context.Context, req agent.UpdateRequest) (*agent.Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := adotel.StartMutationSpan(ctx, "agents.update", req.ID)
	defer span.End()

	a := &agent.Agent{
		ID:           req.ID,
		Name:         strings.TrimSpace(req.Name),
		Instructions: req.Instructions,
	}

	if err := s.store.UpdateAgent(ctx, a); err != nil {
		return nil, err
	}
	a.MeetingsCount = agent.PlaceholderMeetingsCount

	if s.metrics != nil {
		s.metrics.AgentsUpdated.Add(ctx, 1)
	}

	return a, nil
}
