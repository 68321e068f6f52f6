package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/observability"
	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/internal/service"
	"github.com/spec-kit/todo-service/internal/storage"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := repository.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	files, err := storage.NewLocalStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	authCfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}
	authService := service.NewAuthService(authCfg, store.Users(), dispatcher)
	userService := service.NewUserService(store.Users(), files)
	todoService := service.NewTodoService(store.Todos(), dispatcher)
	activityService := service.NewActivityService(&persistence.Redis{}, dispatcher, logger, 100)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0, "")
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("todo-service", "test", nil, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, activityService),
		Todos:          handlers.NewTodosHandler(todoService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), store.Users()),
		StaticDir:      files.BaseDir(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
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

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerUser(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/v1/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tokenResp dto.TokenResponse
	decodeBody(t, resp, &tokenResp)
	require.Equal(t, "bearer", tokenResp.TokenType)
	require.NotEmpty(t, tokenResp.AccessToken)
	return tokenResp.AccessToken
}

func TestRegisterCreateListAndForeignGet(t *testing.T) {
	app := newTestApp(t)

	tokenAna := registerUser(t, app, "Ana", "ana@example.com", "pw123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/todos", tokenAna, map[string]any{
		"title":    "Write report",
		"priority": "high",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.TodoResponse
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	require.False(t, created.Completed)
	require.Equal(t, "todo", string(created.Status))
	require.Equal(t, "high", string(created.Priority))
	require.Equal(t, "task", string(created.TicketType))

	resp = doJSON(t, app, http.MethodGet, "/api/v1/todos", tokenAna, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []dto.TodoResponse
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, created.ID, listed[0].ID)

	// another user's token must not see Ana's todo
	tokenBob := registerUser(t, app, "Bob", "bob@example.com", "pw456")
	resp = doJSON(t, app, http.MethodGet, "/api/v1/todos/"+created.ID, tokenBob, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &errResp)
	require.Equal(t, "NOT_FOUND", errResp.Error.Code)
}

func TestLoginAccessTokenForm(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "Ana", "ana@example.com", "pw123")

	form := url.Values{"username": {"ana@example.com"}, "password": {"pw123"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login/access-token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokenResp dto.TokenResponse
	decodeBody(t, resp, &tokenResp)
	require.Equal(t, "bearer", tokenResp.TokenType)
	require.NotEmpty(t, tokenResp.AccessToken)

	// wrong password
	form.Set("password", "nope")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/login/access-token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/todos", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/todos", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateAndDeleteTodo(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "Ana", "ana@example.com", "pw123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/todos", token, map[string]any{"title": "Fix bug"})
	var created dto.TodoResponse
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/todos/"+created.ID, token, map[string]any{
		"status":    "in_progress",
		"completed": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.TodoResponse
	decodeBody(t, resp, &updated)
	require.Equal(t, "in_progress", string(updated.Status))
	require.Equal(t, "Fix bug", updated.Title)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted dto.TodoResponse
	decodeBody(t, resp, &deleted)
	require.Equal(t, created.ID, deleted.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsersMeAndPublicListing(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "Ana", "ana@example.com", "pw123")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	decodeBody(t, resp, &me)
	require.Equal(t, "ana@example.com", me.Email)
	require.True(t, me.Active)

	resp = doJSON(t, app, http.MethodPatch, "/api/v1/users/me", token, map[string]any{"color": "bg-pink-500"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &me)
	require.Equal(t, "bg-pink-500", me.Color)
	require.Equal(t, "Ana", me.Name)

	// public listing needs no token
	resp = doJSON(t, app, http.MethodGet, "/api/v1/users", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []dto.UserResponse
	decodeBody(t, resp, &users)
	require.Len(t, users, 1)
}

func TestUploadImageContentType(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "Ana", "ana@example.com", "pw123")

	buildUpload := func(contentType string) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
		return body, writer.FormDataContentType()
	}

	body, formType := buildUpload("image/png")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/me/image", body)
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me dto.UserResponse
	decodeBody(t, resp, &me)
	require.NotNil(t, me.Avatar)
	require.True(t, strings.HasPrefix(*me.Avatar, "/static/uploads/user_"))

	body, formType = buildUpload("application/pdf")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/me/image", body)
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
