package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agentdesk/agentdesk/internal/domain/user"
	"github.com/agentdesk/agentdesk/internal/service"
)

func signToken(t *testing.T, secret string, claims user.SessionClaims) string {
	t.Helper()

	enc := func(b []byte) string {
		return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "=")
	}

	header := enc([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	signingInput := header + "." + enc(payload)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingInput))
	return signingInput + "." + enc(mac.Sum(nil))
}

func echoUserHandler(t *testing.T, wantID string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFromContext(r.Context())
		if u == nil {
			t.Error("expected user in context")
			return
		}
		if wantID != "" && u.ID != wantID {
			t.Errorf("expected user %q, got %q", wantID, u.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthDisabledInjectsDefaultUser(t *testing.T) {
	h := Auth(nil, false)(echoUserHandler(t, ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRequiresHeader(t *testing.T) {
	sessions := service.NewSessionVerifier("secret", nil, time.Minute)
	h := Auth(sessions, true)(echoUserHandler(t, ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsNonBearerHeader(t *testing.T) {
	sessions := service.NewSessionVerifier("secret", nil, time.Minute)
	h := Auth(sessions, true)(echoUserHandler(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	sessions := service.NewSessionVerifier("secret", nil, time.Minute)
	h := Auth(sessions, true)(echoUserHandler(t, "user-7"))

	now := time.Now()
	token := signToken(t, "secret", user.SessionClaims{
		UserID:   "user-7",
		Email:    "u7@example.com",
		IssuedAt: now.Unix(),
		Expiry:   now.Add(time.Hour).Unix(),
		Audience: "agentdesk",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	sessions := service.NewSessionVerifier("secret", nil, time.Minute)
	h := Auth(sessions, true)(echoUserHandler(t, ""))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.here")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSkipsPublicPaths(t *testing.T) {
	sessions := service.NewSessionVerifier("secret", nil, time.Minute)
	called := false
	h := Auth(sessions, true)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if !called || rec.Code != http.StatusOK {
		t.Errorf("health must bypass auth, called=%v code=%d", called, rec.Code)
	}
}
