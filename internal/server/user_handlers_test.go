package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wanderlog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestApp(mockRepo *MockUserRepository) (*fiber.App, *Server) {
	s := newAuthTestServer(mockRepo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	return app, s
}

func TestGetMyProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	app, s := newUserTestApp(mockRepo)
	app.Get("/users/me", s.GetMyProfile)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "wanderer", Email: "w@example.com", Password: "secret-hash"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "wanderer", body["username"])
	// Password hashes never leave the server.
	assert.NotContains(t, body, "password")
}

func TestUpdateMyProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		app, s := newUserTestApp(mockRepo)
		app.Put("/users/me", s.UpdateMyProfile)

		mockRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "wanderer"}, nil)
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		body, _ := json.Marshal(map[string]string{"bio": "always traveling"})
		req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var respBody map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&respBody))
		assert.Equal(t, "always traveling", respBody["bio"])
	})

	t.Run("invalid username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		app, s := newUserTestApp(mockRepo)
		app.Put("/users/me", s.UpdateMyProfile)

		mockRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "wanderer"}, nil)

		body, _ := json.Marshal(map[string]string{"username": "x"})
		req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUserProfile_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	app, s := newUserTestApp(mockRepo)
	app.Get("/users/:id", s.GetUserProfile)

	mockRepo.On("GetByID", mock.Anything, uint(42)).
		Return(nil, models.NewNotFoundError("User", uint(42)))

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
