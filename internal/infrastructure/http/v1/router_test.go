package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/internal/core/apperror"
	"roster/internal/domain/roster"
	"roster/internal/infrastructure/storage/memory"
	"roster/pkg/logger"
)

type routerFixture struct {
	store  *memory.Store
	router http.Handler
}

func newFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	require.NoError(t, store.SeedTeam(ctx, roster.Team{ID: "T1", Name: "Lions", MissingPlayers: 1}))
	require.NoError(t, store.SeedTeam(ctx, roster.Team{ID: "T2", Name: "Tigers", MissingPlayers: 0}))

	return &routerFixture{
		store: store,
		router: NewRouter(RouterConfig{
			Backend:     store,
			BackendName: "memory",
			Logger:      logger.Nop(),
		}),
	}
}

func (f *routerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreatePlayer(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/players", `{"name":"Bob","team_id":"T1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Bob", body["name"])
	assert.Equal(t, "T1", body["team_id"])
	require.NotEmpty(t, body["id"])

	rec = f.do(http.MethodGet, "/api/v1/players/"+body["id"].(string), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, decode(t, rec))
}

func TestCreatePlayerErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"team full", `{"name":"Ann","team_id":"T2"}`, http.StatusUnprocessableEntity, apperror.CodeTeamFull},
		{"team not found", `{"name":"Cid","team_id":"ghost"}`, http.StatusNotFound, apperror.CodeTeamNotFound},
		{"blank name", `{"name":"  ","team_id":"T1"}`, http.StatusBadRequest, apperror.CodeValidation},
		{"malformed body", `{"name":`, http.StatusBadRequest, apperror.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/api/v1/players", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decode(t, rec)["code"])
		})
	}
}

func TestGetTeam(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/teams/T1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"id": "T1", "name": "Lions", "missing_players": float64(1)}, decode(t, rec))

	rec = f.do(http.MethodGet, "/api/v1/teams/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperror.CodeNotFound, decode(t, rec)["code"])
}

func TestGetPlayerNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/players/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTraceHeadersAreEchoed(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

type downBackend struct {
	*memory.Store
}

func (downBackend) Ping(context.Context) error { return errors.New("connection refused") }

func (downBackend) TeamByID(context.Context, string) (*roster.Team, error) {
	return nil, errors.New("connection refused")
}

func TestBackendDown(t *testing.T) {
	router := NewRouter(RouterConfig{
		Backend:     downBackend{memory.New()},
		BackendName: "postgres",
		Logger:      logger.Nop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(`{"name":"Bob","team_id":"T1"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apperror.CodeBackendUnavailable, decode(t, rec)["code"])
}
