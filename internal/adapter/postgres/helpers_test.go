package postgres

import (
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/agentdesk/agentdesk/internal/domain"
)

func TestNotFoundWrap(t *testing.T) {
	err := notFoundWrap(pgx.ErrNoRows, "get agent %s", "abc")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for no rows, got: %v", err)
	}
	if !strings.Contains(err.Error(), "get agent abc") {
		t.Errorf("expected message context, got %q", err.Error())
	}

	other := errors.New("connection refused")
	err = notFoundWrap(other, "get agent %s", "abc")
	if errors.Is(err, domain.ErrNotFound) {
		t.Error("store failures must not turn into not-found")
	}
	if !errors.Is(err, other) {
		t.Error("original error must be preserved")
	}
}
