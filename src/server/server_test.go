package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theleywin/devconnect-backend/src/config"
	"github.com/theleywin/devconnect-backend/src/models"
	"github.com/theleywin/devconnect-backend/src/store"
	"github.com/theleywin/devconnect-backend/src/store/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            "test",
		StoreDriver:    "memory",
		JWTSecret:      "server-test-secret-0123456789abcdef",
		JWTTTL:         time.Hour,
		AllowedOrigins: "http://localhost:3000",
	}
}

type client struct {
	t   *testing.T
	app *fiber.App
}

func newClient(t *testing.T) *client {
	t.Helper()
	return &client{t: t, app: New(testConfig(), memory.New().Store()).App()}
}

func (c *client) do(method, path, token string, body interface{}) (int, map[string]interface{}, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	var obj map[string]interface{}
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, raw
}

// signup registers a user and returns its bearer token.
func (c *client) signup(name, email string) string {
	c.t.Helper()
	status, _, raw := c.do("POST", "/api/users/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1", "password2": "secret1",
	})
	require.Equal(c.t, http.StatusCreated, status, string(raw))

	status, body, raw := c.do("POST", "/api/users/login", "", map[string]string{
		"email": email, "password": "secret1",
	})
	require.Equal(c.t, http.StatusOK, status, string(raw))
	assert.Equal(c.t, true, body["success"])
	return body["token"].(string)
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	status, body, _ := c.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	st := memory.New().Store()
	st.Ping = func(context.Context) error { return errors.New("down") }
	down := &client{t: t, app: New(testConfig(), st).App()}
	status, _, _ = down.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)
	token := c.signup("Jane Doe", "jane@example.com")

	status, body, _ := c.do("GET", "/api/users/current", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.NotContains(t, body, "password")

	status, body, _ = c.do("GET", "/api/users/current", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", body["code"])

	status, body, _ = c.do("POST", "/api/users/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "secret1", "password2": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "email")

	status, _, _ = c.do("POST", "/api/users/login", "", map[string]string{"email": "ghost@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body, _ = c.do("POST", "/api/users/login", "", map[string]string{"email": "jane@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "password")
}

func TestProfileScenario(t *testing.T) {
	c := newClient(t)
	alice := c.signup("Alice", "alice@example.com")
	bob := c.signup("Bob", "bob@example.com")

	status, _, _ := c.do("GET", "/api/profile", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)

	_, _, raw := c.do("GET", "/api/profile/all", "", nil)
	assert.JSONEq(t, "[]", string(raw))

	profile := map[string]interface{}{"handle": "jdoe", "status": "Developer", "skills": "go, js"}
	status, body, _ := c.do("POST", "/api/profile", alice, profile)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, []interface{}{"go", "js"}, body["skills"])

	status, _, _ = c.do("POST", "/api/profile", alice, profile)
	assert.Equal(t, http.StatusOK, status)

	status, body, _ = c.do("POST", "/api/profile", bob, profile)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])

	status, body, _ = c.do("GET", "/api/profile/handle/jdoe", "", nil)
	require.Equal(t, http.StatusOK, status)
	owner := body["user"].(map[string]interface{})
	assert.Equal(t, "Alice", owner["name"])

	status, _, _ = c.do("GET", "/api/profile/user/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body, _ = c.do("POST", "/api/profile/experience", alice, map[string]interface{}{
		"title": "Dev", "company": "Acme", "from": "2020-01-01", "current": true,
	})
	require.Equal(t, http.StatusOK, status)
	exp := body["experience"].([]interface{})
	require.Len(t, exp, 1)
	expID := exp[0].(map[string]interface{})["id"].(string)

	status, body, _ = c.do("DELETE", "/api/profile/experience/"+expID, alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["experience"])

	status, _, _ = c.do("POST", "/api/profile/education", bob, map[string]interface{}{
		"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "2012-09-01",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, body, _ = c.do("DELETE", "/api/profile", alice, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _, _ = c.do("GET", "/api/users/current", alice, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPostScenario(t *testing.T) {
	c := newClient(t)
	owner := c.signup("Owner", "owner@example.com")
	fan := c.signup("Fan", "fan@example.com")

	_, _, raw := c.do("GET", "/api/posts", "", nil)
	assert.JSONEq(t, "[]", string(raw))

	status, body, _ := c.do("POST", "/api/posts", "", map[string]string{"text": "Hello DevConnect people"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body, _ = c.do("POST", "/api/posts", owner, map[string]string{"text": "short"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "text")

	status, body, _ = c.do("POST", "/api/posts", owner, map[string]string{"text": "Hello DevConnect people"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Owner", body["name"])
	postID := body["id"].(string)

	status, body, _ = c.do("POST", "/api/posts/like/"+postID, fan, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["likes"], 1)

	status, body, _ = c.do("POST", "/api/posts/like/"+postID, fan, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_LIKED", body["code"])

	status, _, _ = c.do("POST", "/api/posts/unlike/"+postID, fan, nil)
	assert.Equal(t, http.StatusOK, status)
	status, body, _ = c.do("POST", "/api/posts/unlike/"+postID, fan, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NOT_LIKED", body["code"])

	status, body, _ = c.do("POST", "/api/posts/comment/"+postID, fan, map[string]string{"text": "Nice post, welcome!"})
	require.Equal(t, http.StatusOK, status)
	comments := body["comments"].([]interface{})
	require.Len(t, comments, 1)
	commentID := comments[0].(map[string]interface{})["id"].(string)

	status, _, _ = c.do("DELETE", "/api/posts/comment/"+postID+"/"+commentID, owner, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body, _ = c.do("DELETE", "/api/posts/"+postID, fan, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _, _ = c.do("GET", "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body, _ = c.do("DELETE", "/api/posts/"+postID, owner, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _, _ = c.do("GET", "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStoreFailureHidesDetails(t *testing.T) {
	st := memory.New().Store()
	st.Posts = failingPosts{st.Posts}
	c := &client{t: t, app: New(testConfig(), st).App()}

	status, body, _ := c.do("GET", "/api/posts", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Server error", body["message"])
	assert.Equal(t, "STORE_FAILURE", body["code"])
}

type failingPosts struct {
	store.Posts
}

func (failingPosts) List(context.Context) ([]models.Post, error) {
	return nil, errors.New("connection reset")
}
