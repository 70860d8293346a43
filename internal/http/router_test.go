package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adminhub/internal/cache"
	intconfig "adminhub/internal/config"
	"adminhub/internal/domain"
	"adminhub/internal/http/handlers"
	"adminhub/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestRouter(t *testing.T) (*gin.Engine, services.AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auth := services.AuthService{DB: db, Secret: []byte("test-secret"), TTL: time.Hour}
	env := intconfig.Env{CORSAllowedOrigins: []string{"http://localhost:3000"}}
	r := NewRouter(env, handlers.Handler{DB: db, Cache: cache.Noop{}, Auth: auth})
	return r, auth, mock
}

func bearer(t *testing.T, auth services.AuthService, id domain.ID, role domain.UserRole) string {
	t.Helper()
	tok, _, err := auth.Issue(id, role, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(r *gin.Engine, method, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r, _, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/health", "").Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/metrics", "").Code)

	w := call(r, http.MethodGet, "/api/routes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/assignments/:id/receipt")

	w = call(r, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestSecuredRoutesNeedToken(t *testing.T) {
	r, _, _ := newTestRouter(t)
	for _, path := range []string{"/api/auth/me", "/api/assets", "/api/matches", "/api/reservations", "/api/dashboard/sports"} {
		w := call(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}

func TestWritesAreRoleGated(t *testing.T) {
	r, auth, mock := newTestRouter(t)

	cases := []struct {
		method, path string
		role         domain.UserRole
	}{
		{http.MethodGet, "/api/users", domain.RolePersonnel},
		{http.MethodPost, "/api/categories", domain.RoleOrganizer},
		{http.MethodDelete, "/api/assets/1", domain.RolePersonnel},
		{http.MethodPost, "/api/assignments", domain.RoleOrganizer},
		{http.MethodPost, "/api/competitions", domain.RoleParticipant},
		{http.MethodPatch, "/api/participants/1/payment", domain.RoleReferee},
		{http.MethodPatch, "/api/matches/1/score", domain.RoleParticipant},
		{http.MethodDelete, "/api/matches/1", domain.RoleReferee},
		{http.MethodGet, "/api/dashboard/inventory", domain.RoleReferee},
		{http.MethodPost, "/api/reservations", domain.RoleReferee},
		{http.MethodPatch, "/api/reservations/1/status", domain.RoleParticipant},
		{http.MethodDelete, "/api/reservations/1", domain.RoleParticipant},
	}
	for _, tc := range cases {
		w := call(r, tc.method, tc.path, bearer(t, auth, 5, tc.role))
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s as %s", tc.method, tc.path, tc.role)
	}
	// nothing reached the database
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefereeReachesScoreHandler(t *testing.T) {
	r, auth, _ := newTestRouter(t)
	w := call(r, http.MethodPatch, "/api/matches/1/score", bearer(t, auth, 5, domain.RoleReferee))
	// passes the role gate and fails on the empty body
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "empty_body")
}
