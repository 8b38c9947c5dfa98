// Package otel provides OpenTelemetry instrumentation for AgentDesk.
package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "agentdesk"

// Metrics holds all AgentDesk metric instruments.
type Metrics struct {
	AgentsCreated metric.Int64Counter
	AgentsUpdated metric.Int64Counter
	AgentQueries  metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.AgentsCreated, err = meter.Int64Counter("agentdesk.agents.created",
		metric.WithDescription("Number of agents created"))
	if err != nil {
		return nil, err
	}

	m.AgentsUpdated, err = meter.Int64Counter("agentdesk.agents.updated",
		metric.WithDescription("Number of agents updated"))
	if err != nil {
		return nil, err
	}

	m.AgentQueries, err = meter.Int64Counter("agentdesk.agents.queries",
		metric.WithDescription("Number of agent collection queries"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
