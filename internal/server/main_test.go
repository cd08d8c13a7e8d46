package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/momtheprogram/api-final-writers-blog/internal/config"
	"github.com/momtheprogram/api-final-writers-blog/internal/database"
	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret-key-for-handler-tests",
		AccessTTLMin:   60,
		RefreshTTLDays: 7,
		Port:           "8000",
		Env:            "test",
	}
}

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: database.NewGormLogger(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	s, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// newTestServerWithRedis also wires a miniredis instance for the token
// blacklist paths.
func newTestServerWithRedis(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s, app := newTestServer(t)
	s.redis = client
	return s, app
}

func createTestUser(t *testing.T, s *Server, username string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func accessTokenFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	access, _, err := s.generateTokenPair(user.ID, user.Username)
	require.NoError(t, err)
	return access
}

func createTestPost(t *testing.T, s *Server, author *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	require.NoError(t, s.db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, s *Server, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Text: text, AuthorID: author.ID, PostID: post.ID}
	require.NoError(t, s.db.Create(comment).Error)
	return comment
}

func createTestGroup(t *testing.T, s *Server, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: title}
	require.NoError(t, s.db.Create(group).Error)
	return group
}

// doJSON performs a request against the app. An empty token sends no
// Authorization header.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func countRows(t *testing.T, s *Server, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.db.Model(model).Count(&count).Error)
	return count
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/api/v1/posts/%d", id)
}

func commentDetailPath(postID, commentID uint) string {
	return fmt.Sprintf("/api/v1/posts/%d/comments/%d", postID, commentID)
}
