package server

import (
	"net/http"
	"testing"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndTokenFlow(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users/", "", map[string]interface{}{
		"username": "anna",
		"email":    "anna@example.com",
		"password": "correct-horse1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "anna", created.Username)
	assert.NotZero(t, created.ID)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/jwt/create/", "", map[string]interface{}{
		"username": "anna",
		"password": "correct-horse1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decodeBody(t, resp, &tokens)
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)

	// Access token authenticates a write.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/posts/", tokens.Access,
		map[string]interface{}{"text": "first post"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSignupRejectsWeakInput(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing password", map[string]interface{}{"username": "anna", "email": "a@example.com"}},
		{"bad email", map[string]interface{}{"username": "anna", "email": "nope", "password": "correct-horse1"}},
		{"numeric password", map[string]interface{}{"username": "anna", "email": "a@example.com", "password": "12345678"}},
		{"reserved username", map[string]interface{}{"username": "admin", "email": "a@example.com", "password": "correct-horse1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/v1/users/", "", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	s, app := newTestServer(t)
	createTestUser(t, s, "anna")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/users/", "", map[string]interface{}{
		"username": "anna",
		"email":    "other@example.com",
		"password": "correct-horse1",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateTokenWrongPassword(t *testing.T) {
	s, app := newTestServer(t)
	createTestUser(t, s, "anna")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/jwt/create/", "", map[string]interface{}{
		"username": "anna",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Detail, "auth failures carry a detail message")
}

func TestRefreshTokenIssuesNewAccess(t *testing.T) {
	s, app := newTestServer(t)
	anna := createTestUser(t, s, "anna")
	_, refresh, err := s.generateTokenPair(anna.ID, anna.Username)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/jwt/refresh/", "", map[string]interface{}{
		"refresh": refresh,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Access string `json:"access"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Access)

	// The minted access token works against a protected route.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/posts/", body.Access,
		map[string]interface{}{"text": "via refresh"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	s, app := newTestServer(t)
	anna := createTestUser(t, s, "anna")
	access, _, err := s.generateTokenPair(anna.ID, anna.Username)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/jwt/refresh/", "", map[string]interface{}{
		"refresh": access,
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessTokenRejectsRefreshToken(t *testing.T) {
	s, app := newTestServer(t)
	anna := createTestUser(t, s, "anna")
	_, refresh, err := s.generateTokenPair(anna.ID, anna.Username)
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", refresh,
		map[string]interface{}{"text": "wrong token type"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyToken(t *testing.T) {
	s, app := newTestServer(t)
	anna := createTestUser(t, s, "anna")
	access, refresh, err := s.generateTokenPair(anna.ID, anna.Username)
	require.NoError(t, err)

	for _, token := range []string{access, refresh} {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/jwt/verify/", "", map[string]interface{}{
			"token": token,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/jwt/verify/", "", map[string]interface{}{
		"token": "garbage",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", "",
		map[string]interface{}{"text": "anon"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, models.CodeUnauthorized, body.Code)
	assert.NotEmpty(t, body.Detail)
}

func TestLogoutRevokesToken(t *testing.T) {
	s, app := newTestServerWithRedis(t)
	anna := createTestUser(t, s, "anna")
	token := accessTokenFor(t, s, anna)

	// The token works before logout.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", token,
		map[string]interface{}{"text": "before logout"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/jwt/logout/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// The same token is now revoked.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/posts/", token,
		map[string]interface{}{"text": "after logout"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/posts/", "not-a-jwt",
		map[string]interface{}{"text": "anon"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
