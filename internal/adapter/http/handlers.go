package http

import (
	"github.com/agentdesk/agentdesk/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Agents *service.AgentService
}
