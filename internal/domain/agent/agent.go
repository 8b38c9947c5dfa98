// Package agent defines the agent record and its input validation.
package agent

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/agentdesk/agentdesk/internal/domain"
)

const (
	maxNameLength         = 255
	maxInstructionsLength = 20000
)

// PlaceholderMeetingsCount is attached to every agent read until a real
// meetings aggregate exists. Known gap, kept for wire-shape compatibility.
const PlaceholderMeetingsCount = 5

// Agent is a user-owned assistant definition.
type Agent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// MeetingsCount is a placeholder constant, not a computed aggregate.
	MeetingsCount int `json:"meetingsCount"`
}

// CreateRequest is the payload for creating an agent. The owner is never
// part of the request; it is taken from the authenticated context.
type CreateRequest struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// Validate checks the create payload against the schema.
func (r *CreateRequest) Validate() error {
	return validateFields(r.Name, r.Instructions)
}

// UpdateRequest is the payload for updating an agent's mutable attributes.
// ID, owner and creation time are immutable.
type UpdateRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// Validate checks the update payload against the schema.
func (r *UpdateRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required: %w", domain.ErrValidation)
	}
	return validateFields(r.Name, r.Instructions)
}

func validateFields(name, instructions string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name exceeds %d characters: %w", maxNameLength, domain.ErrValidation)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name contains control characters: %w", domain.ErrValidation)
		}
	}
	if instructions == "" {
		return fmt.Errorf("instructions is required: %w", domain.ErrValidation)
	}
	if len(instructions) > maxInstructionsLength {
		return fmt.Errorf("instructions exceeds %d characters: %w", maxInstructionsLength, domain.ErrValidation)
	}
	return nil
}
