package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"cafe_directory/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestSignupLogsUserIn(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "alice@test.com", "secret1")

	// The fresh session cookie works immediately
	rec := env.request(t, http.MethodGet, "/profile", "", alice.cookie, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"username":"alice"`)

	// The password hash never leaves the server
	require.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	// Missing email
	rec := env.request(t, http.MethodPost, "/signup",
		`{"username":"alice","first_name":"A","last_name":"B","password":"secret1"}`, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Username too long
	rec = env.request(t, http.MethodPost, "/signup",
		`{"username":"averyverylongusername","email":"a@test.com","first_name":"A","last_name":"B","password":"secret1"}`, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Password too short
	rec = env.request(t, http.MethodPost, "/signup",
		`{"username":"alice","email":"a@test.com","first_name":"A","last_name":"B","password":"pw"}`, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing was persisted
	var count int64
	require.NoError(t, env.db.Model(&domain.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSignupDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "alice@test.com", "secret1")

	rec := env.request(t, http.MethodPost, "/signup",
		`{"username":"alice","email":"other@test.com","first_name":"A","last_name":"B","password":"secret1"}`, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "already taken")

	// The first registration still logs in
	rec = env.request(t, http.MethodPost, "/login",
		`{"username":"alice","password":"secret1"}`, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginUniformFailureMessage(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "alice@test.com", "secret1")

	// Wrong password and unknown user must be indistinguishable
	wrongPw := env.request(t, http.MethodPost, "/login",
		`{"username":"alice","password":"wrong"}`, nil, "")
	unknown := env.request(t, http.MethodPost, "/login",
		`{"username":"nobody","password":"secret1"}`, nil, "")

	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "alice@test.com", "secret1")

	// Without the CSRF token the cookie-backed logout is refused
	rec := env.request(t, http.MethodPost, "/logout", "", alice.cookie, "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodPost, "/logout", "", alice.cookie, alice.csrf)
	require.Equal(t, http.StatusOK, rec.Code)

	// The session is gone
	rec = env.request(t, http.MethodGet, "/profile", "", alice.cookie, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logging out when not logged in is a no-op, not an error
	rec = env.request(t, http.MethodPost, "/logout", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionSurvivesAcrossRequests(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "alice@test.com", "secret1")

	for i := 0; i < 3; i++ {
		rec := env.request(t, http.MethodGet, "/profile", "", alice.cookie, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestDeletedUserSessionIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "alice", "alice@test.com", "secret1")

	// Delete the account behind the live session
	require.NoError(t, env.db.Delete(&domain.User{}, alice.userID).Error)

	// The request does not fail, it is simply unauthenticated
	rec := env.request(t, http.MethodGet, "/profile", "", alice.cookie, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIToken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice", "alice@test.com", "secret1")

	rec := env.request(t, http.MethodPost, "/api/token",
		`{"username":"alice","password":"secret1"}`, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	// The bearer token authenticates JSON API calls without a cookie
	req := env.request(t, http.MethodGet, "/profile", "", nil, "")
	require.Equal(t, http.StatusUnauthorized, req.Code)

	rec2 := env.requestWithBearer(t, http.MethodGet, "/profile", "", resp.Token)
	require.Equal(t, http.StatusOK, rec2.Code)
	require.Contains(t, rec2.Body.String(), `"username":"alice"`)

	// Bad credentials get the uniform refusal
	rec = env.request(t, http.MethodPost, "/api/token",
		`{"username":"alice","password":"wrong"}`, nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
