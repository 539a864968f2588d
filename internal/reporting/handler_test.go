package reporting_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/cmdreview/internal/reporting"
	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

type mockSystem struct {
	stats     map[int64]reporting.Stats
	lastLimit int
	fail      error
}

func (m *mockSystem) Handler() *reporting.Handler { return nil }

func (m *mockSystem) Stats(_ context.Context, id int64) (*reporting.Stats, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	s := m.stats[id]
	return &s, nil
}

func (m *mockSystem) RoleCounts(context.Context) (*reporting.RoleCounts, error) {
	return &reporting.RoleCounts{ValidatorCount: 1, ValidatorNames: []string{"ada"}, ViewerNames: []string{}}, nil
}

func (m *mockSystem) RecentActivity(_ context.Context, limit int) ([]reporting.Activity, error) {
	m.lastLimit = limit
	return []reporting.Activity{}, nil
}

func (m *mockSystem) Leaderboard(context.Context) ([]reporting.Standing, error) {
	return []reporting.Standing{{Rank: 1, ValidatorID: 1, Name: "ada", Processed: 4}}, nil
}

func (m *mockSystem) Live(context.Context) ([]reporting.LiveStatus, error) {
	return []reporting.LiveStatus{}, nil
}

func (m *mockSystem) Overview(context.Context) (*reporting.Overview, error) {
	return &reporting.Overview{}, nil
}

func get(h http.Handler, p *auth.Principal, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), *p))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReportsHandler(t *testing.T) {
	sys := &mockSystem{stats: map[int64]reporting.Stats{
		1: {Dynamic: 4, Static: 3, Processed: 7, Remaining: 3, Total: 10},
	}}

	mux := http.NewServeMux()
	routes.Register(mux, reporting.NewHandler(sys, slog.Default()).Routes())

	ada := &auth.Principal{ID: 1, Name: "ada", Role: auth.RoleValidator}
	admin := &auth.Principal{ID: 9, Name: "root", Role: auth.RoleAdmin}

	rec := get(mux, ada, "/reports/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dynamic":4,"static":3,"processed":7,"remaining":3,"total":10}`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, get(mux, admin, "/reports/stats").Code)
	assert.Equal(t, http.StatusForbidden, get(mux, ada, "/reports/stats/1").Code)
	assert.Equal(t, http.StatusForbidden, get(mux, ada, "/reports/overview").Code)
	assert.Equal(t, http.StatusUnauthorized, get(mux, nil, "/reports/leaderboard").Code)

	rec = get(mux, admin, "/reports/stats/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"processed":7`)

	assert.Equal(t, http.StatusBadRequest, get(mux, admin, "/reports/stats/abc").Code)

	rec = get(mux, admin, "/reports/leaderboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var board []reporting.Standing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	assert.Equal(t, "ada", board[0].Name)

	assert.Equal(t, http.StatusOK, get(mux, admin, "/reports/recent").Code)
	assert.Equal(t, reporting.DefaultRecentLimit, sys.lastLimit)
	assert.Equal(t, http.StatusOK, get(mux, admin, "/reports/recent?limit=3").Code)
	assert.Equal(t, 3, sys.lastLimit)
	assert.Equal(t, http.StatusBadRequest, get(mux, admin, "/reports/recent?limit=many").Code)

	for _, path := range []string{"/reports/roles", "/reports/live", "/reports/overview"} {
		assert.Equal(t, http.StatusOK, get(mux, admin, path).Code, path)
	}

	sys.fail = errors.New("connection reset")
	rec = get(mux, admin, "/reports/stats/1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
