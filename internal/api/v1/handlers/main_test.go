package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	v1 "todo-tracker/internal/api/v1"
	"todo-tracker/internal/api/v1/handlers"
	"todo-tracker/internal/middleware"
	"todo-tracker/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestApp builds the full route table over in-memory repositories.
// No Redis client is configured, so the task cache stays disabled.
func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	h := handlers.New(memory.NewUserRepository(), memory.NewTaskRepository(), "test")
	v1.RegisterRoutes(app, h)
	return app
}

// doJSON performs a request against the app and decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// signupUser registers a fresh user and returns their token.
func signupUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	status, body := doJSON(t, app, "POST", "/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, 201, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createTask creates a task for the given token and returns the task payload.
func createTask(t *testing.T, app *fiber.App, token string, payload map[string]any) map[string]any {
	t.Helper()

	status, body := doJSON(t, app, "POST", "/tasks", token, payload)
	require.Equal(t, 201, status)
	task, ok := body["task"].(map[string]any)
	require.True(t, ok, "expected task in response")
	return task
}
