package http

import (
	"bytes"
	"fmt"
	"io"
	stdhttp "net/http"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	localCache "github.com/inkwellhq/inkwell/pkg/internal/cache"
	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/services"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) *fiber.App {
	t.Helper()

	viper.Set("security.jwt_secret", "gateway-test-secret")
	viper.Set("security.access_token_duration", "1h")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	database.C = db

	if localCache.S == nil {
		require.NoError(t, localCache.NewStore())
	}
	services.InvalidateTagNamesCache()

	return NewServer().app
}

func performRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := jsoniter.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := stdhttp.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]any{}
	if raw, err := io.ReadAll(resp.Body); err == nil && len(raw) > 0 {
		_ = jsoniter.Unmarshal(raw, &payload)
	}

	return resp.StatusCode, payload
}

func registerTestUser(t *testing.T, app *fiber.App, name string) string {
	t.Helper()

	status, payload := performRequest(t, app, "POST", "/users", "", fiber.Map{
		"user": fiber.Map{
			"username": name,
			"email":    name + "@x.com",
			"password": "pw123456",
		},
	})
	require.Equal(t, fiber.StatusCreated, status)

	token, _ := payload["user"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPublishingFlow(t *testing.T) {
	app := setupTestServer(t)

	token := registerTestUser(t, app, "alice")

	// The fresh token resolves back to the registered identity.
	status, payload := performRequest(t, app, "GET", "/user", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alice", payload["user"].(map[string]any)["username"])

	status, payload = performRequest(t, app, "POST", "/articles", token, fiber.Map{
		"article": fiber.Map{
			"title":       "My Post",
			"description": "d",
			"body":        "b",
			"tagList":     []string{"go", "api"},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)
	article := payload["article"].(map[string]any)
	assert.True(t, strings.HasPrefix(article["slug"].(string), "my-post"))
	assert.ElementsMatch(t, []any{"go", "api"}, article["tagList"])
	assert.Equal(t, false, article["favorited"])
	assert.EqualValues(t, 0, article["favoritesCount"])
	slug := article["slug"].(string)

	status, payload = performRequest(t, app, "POST", "/articles/"+slug+"/favorite", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	article = payload["article"].(map[string]any)
	assert.Equal(t, true, article["favorited"])
	assert.EqualValues(t, 1, article["favoritesCount"])

	status, _ = performRequest(t, app, "POST", "/articles/"+slug+"/favorite", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, payload = performRequest(t, app, "DELETE", "/articles/"+slug+"/favorite", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	article = payload["article"].(map[string]any)
	assert.Equal(t, false, article["favorited"])
	assert.EqualValues(t, 0, article["favoritesCount"])

	status, payload = performRequest(t, app, "GET", "/tags", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.ElementsMatch(t, []any{"api", "go"}, payload["tags"])
}

func TestRegistrationConflicts(t *testing.T) {
	app := setupTestServer(t)

	registerTestUser(t, app, "bob")

	status, _ := performRequest(t, app, "POST", "/users", "", fiber.Map{
		"user": fiber.Map{"username": "bob", "email": "fresh@x.com", "password": "pw123456"},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = performRequest(t, app, "POST", "/users", "", fiber.Map{
		"user": fiber.Map{"username": "fresh", "email": "bob@x.com", "password": "pw123456"},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLogin(t *testing.T) {
	app := setupTestServer(t)

	registerTestUser(t, app, "carol")

	status, payload := performRequest(t, app, "POST", "/users/login", "", fiber.Map{
		"user": fiber.Map{"email": "carol@x.com", "password": "pw123456"},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, payload["user"].(map[string]any)["token"])

	status, _ = performRequest(t, app, "POST", "/users/login", "", fiber.Map{
		"user": fiber.Map{"email": "carol@x.com", "password": "wrong-password"},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestArticleOwnership(t *testing.T) {
	app := setupTestServer(t)

	author := registerTestUser(t, app, "dana")
	intruder := registerTestUser(t, app, "eve")

	status, payload := performRequest(t, app, "POST", "/articles", author, fiber.Map{
		"article": fiber.Map{"title": "Guarded", "description": "d", "body": "b"},
	})
	require.Equal(t, fiber.StatusCreated, status)
	slug := payload["article"].(map[string]any)["slug"].(string)

	status, _ = performRequest(t, app, "PUT", "/articles/"+slug, intruder, fiber.Map{
		"article": fiber.Map{"title": "Hijacked"},
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = performRequest(t, app, "DELETE", "/articles/"+slug, intruder, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// The article survives the failed takeover.
	status, _ = performRequest(t, app, "GET", "/articles/"+slug, "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = performRequest(t, app, "DELETE", "/articles/"+slug, author, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = performRequest(t, app, "GET", "/articles/"+slug, "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestArticleListingAndComments(t *testing.T) {
	app := setupTestServer(t)

	token := registerTestUser(t, app, "finn")

	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		status, _ := performRequest(t, app, "POST", "/articles", token, fiber.Map{
			"article": fiber.Map{"title": title, "description": "d", "body": "b"},
		})
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, payload := performRequest(t, app, "GET", "/articles?limit=2&offset=0", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, payload["articles"], 2)
	assert.EqualValues(t, 5, payload["articlesCount"])

	status, payload = performRequest(t, app, "GET", "/articles?author=finn", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 5, payload["articlesCount"])

	status, _ = performRequest(t, app, "POST", "/articles/one/comments", token, fiber.Map{
		"comment": fiber.Map{"body": "first!"},
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, payload = performRequest(t, app, "GET", "/articles/one/comments", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	comments := payload["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "first!", comments[0].(map[string]any)["body"])

	// Anonymous writes are rejected outright.
	status, _ = performRequest(t, app, "POST", "/articles", "", fiber.Map{
		"article": fiber.Map{"title": "Nope", "description": "d", "body": "b"},
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
