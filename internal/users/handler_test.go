package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/cmdreview/internal/users"
	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/middleware"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

func newServer(t *testing.T) (http.Handler, users.System, *auth.Tokens) {
	t.Helper()

	cfg := &auth.Config{Secret: strings.Repeat("k", 32), TokenTTL: "1h"}
	require.NoError(t, cfg.Finalize(nil))
	tokens := auth.NewTokens(cfg)

	sys := newSystem(t)
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(tokens).Routes())

	return middleware.Chain(mux, auth.Authenticate(tokens)), sys, tokens
}

func do(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerRegisterAndLogin(t *testing.T) {
	h, _, _ := newServer(t)

	rec := do(h, "POST", "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"password1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(h, "POST", "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"password1"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, "POST", "/auth/register", `{"name":"Ada","email":"ada@example.com","password":"password1","role":"admin"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, "POST", "/auth/login", `{"email":"ada@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, "POST", "/auth/login", `{"email":"ada@example.com","password":"password1","role":"admin"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, "POST", "/auth/login", `{"email":"ada@example.com","password":"password1","role":"validator"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		Token     string     `json:"token"`
		ExpiresAt time.Time  `json:"expires_at"`
		User      users.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "Ada", session.User.Name)

	rec = do(h, "GET", "/users/me", "", session.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)
}

func TestHandlerRoleEnforcement(t *testing.T) {
	h, sys, tokens := newServer(t)
	ctx := context.Background()

	admin, err := sys.Create(ctx, users.CreateCommand{Name: "Root", Email: "root@example.com", Password: "password1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	validator, err := sys.Register(ctx, users.RegisterCommand{Name: "Val", Email: "val@example.com", Password: "password1"})
	require.NoError(t, err)

	adminToken, err := tokens.Issue(admin.Principal())
	require.NoError(t, err)
	validatorToken, err := tokens.Issue(validator.Principal())
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(h, "GET", "/users/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, "GET", "/users/me", "", "garbage").Code)
	assert.Equal(t, http.StatusForbidden, do(h, "GET", "/users", "", validatorToken.Value).Code)
	assert.Equal(t, http.StatusForbidden, do(h, "GET", "/users/validators", "", validatorToken.Value).Code)

	rec := do(h, "GET", "/users/validators", "", adminToken.Value)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []users.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, validator.ID, list[0].ID)

	rec = do(h, "GET", "/users?role=admin", "", adminToken.Value)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = do(h, "GET", "/users?sort=PasswordHash", "", adminToken.Value)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, "GET", "/users?sort="+url.QueryEscape("(SELECT password_hash FROM users LIMIT 1)"), "", adminToken.Value)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
