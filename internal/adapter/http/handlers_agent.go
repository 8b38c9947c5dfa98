package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agentdesk/agentdesk/internal/domain/agent"
	"github.com/agentdesk/agentdesk/internal/domain/page"
)

// ListAgents returns one page of the caller's agents with count metadata.
// Query parameters: page, page_size, search.
func (h *Handlers) ListAgents(w http.ResponseWriter, r *http.Request) {
	req, ok := parsePageRequest(w, r)
	if !ok {
		return
	}

	result, err := h.Agents.GetMany(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "list agents failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetAgent returns a single agent owned by the caller, or 404. Absent ids
// and ids owned by other users are indistinguishable.
func (h *Handlers) GetAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.Agents.GetOne(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateAgent validates the payload and creates an agent owned by the caller.
func (h *Handlers) CreateAgent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[agent.CreateRequest](w, r)
	if !ok {
		return
	}

	a, err := h.Agents.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "create agent failed")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// UpdateAgent replaces the mutable attributes of an agent the caller owns.
func (h *Handlers) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSON[struct {
		Name         string `json:"name"`
		Instructions string `json:"instructions"`
	}](w, r)
	if !ok {
		return
	}

	a, err := h.Agents.Update(r.Context(), agent.UpdateRequest{
		ID:           chi.URLParam(r, "id"),
		Name:         body.Name,
		Instructions: body.Instructions,
	})
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// parsePageRequest reads page, page_size and search query parameters.
// Absent parameters stay zero and pick up defaults in the service layer.
// Explicit values below 1 are rejected here: once a zero reaches the
// service it is indistinguishable from an absent parameter and would be
// defaulted instead of refused. Upper bounds are checked further down.
func parsePageRequest(w http.ResponseWriter, r *http.Request) (page.Request, bool) {
	var req page.Request
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return req, false
		}
		req.Page = n
	}

	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < page.MinPageSize {
			writeError(w, http.StatusBadRequest, "page_size must be a positive integer")
			return req, false
		}
		req.PageSize = n
	}

	req.Search = q.Get("search")
	return req, true
}
