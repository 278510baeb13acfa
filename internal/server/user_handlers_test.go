package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"juicebox/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := newTestServer(mockRepo, nil, nil)

	mockRepo.On("List", mock.Anything).Return([]models.User{
		{ID: 1, Username: "albert"},
		{ID: 2, Username: "sandra"},
	}, nil)

	app := fiber.New()
	app.Get("/users", s.GetUsers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	users, ok := body["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 2)

	// password hashes never serialize
	for _, u := range users {
		assert.NotContains(t, u.(map[string]any), "password")
	}
}

func TestGetUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := newTestServer(mockRepo, nil, nil)

	mockRepo.On("GetByIDWithPosts", mock.Anything, uint(1)).Return(&models.User{
		ID:       1,
		Username: "albert",
		Posts: []models.Post{
			{ID: 1, AuthorID: 1, Active: true, Title: "visible"},
			{ID: 2, AuthorID: 1, Active: false, Title: "hidden"},
		},
	}, nil)

	app := fiber.New()
	app.Get("/users/:id", s.GetUser)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/1", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "albert", body["username"])

	posts, ok := body["posts"].([]any)
	require.True(t, ok)
	require.Len(t, posts, 1)
	assert.Equal(t, "visible", posts[0].(map[string]any)["title"])
}

func TestGetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := newTestServer(mockRepo, nil, nil)

	mockRepo.On("GetByIDWithPosts", mock.Anything, uint(9)).
		Return(nil, models.NewNotFoundError("User", 9))

	app := fiber.New()
	app.Get("/users/:id", s.GetUser)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/9", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestGetUserPosts_FiltersForViewer(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s := newTestServer(nil, mockRepo, nil)

	mockRepo.On("GetByAuthorID", mock.Anything, uint(1)).Return([]*models.Post{
		{ID: 1, AuthorID: 1, Active: true, Title: "visible"},
		{ID: 2, AuthorID: 1, Active: false, Title: "hidden"},
	}, nil)

	app := fiber.New()
	app.Get("/users/:id/posts", s.GetUserPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/1/posts", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	posts, ok := body["posts"].([]any)
	require.True(t, ok)
	require.Len(t, posts, 1)
	assert.Equal(t, "visible", posts[0].(map[string]any)["title"])
}

func TestGetUserPosts_UnknownAuthorIsEmptyList(t *testing.T) {
	mockRepo := new(MockPostRepository)
	s := newTestServer(nil, mockRepo, nil)

	mockRepo.On("GetByAuthorID", mock.Anything, uint(77)).Return([]*models.Post{}, nil)

	app := fiber.New()
	app.Get("/users/:id/posts", s.GetUserPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/77/posts", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	posts, ok := body["posts"].([]any)
	require.True(t, ok)
	assert.Empty(t, posts)
}

func TestUpdateMyProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := newTestServer(mockRepo, nil, nil)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "albert", Name: "Al"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "Al Bert"
	})).Return(nil)

	app := fiber.New()
	withIdentity(app, 1)
	app.Put("/users/me", s.UpdateMyProfile)

	raw, _ := json.Marshal(map[string]string{"name": "Al Bert"})
	req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Al Bert", body["name"])
	mockRepo.AssertExpectations(t)
}
