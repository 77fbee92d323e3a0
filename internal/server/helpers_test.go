package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"devconnect/internal/config"
	"devconnect/internal/github"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server on an in-memory store with no Redis and no
// metrics registration, so tests stay independent.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Experience{},
		&models.Education{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		Env:           "test",
		GithubAPIBase: "http://127.0.0.1:1",
	}
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
	}
	s.profileService = service.NewProfileService(
		profileRepo, userRepo, github.NewClient(cfg.GithubAPIBase, ""))
	s.postService = service.NewPostService(postRepo, userRepo)

	return s, db
}

func newTestApp(t *testing.T, s *Server) *fiber.App {
	t.Helper()
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

// createTestUser persists a user and returns it with a signed token.
func createTestUser(t *testing.T, s *Server, db *gorm.DB, name, email string) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: "$2a$04$notarealhashnotarealhashnotarealhash",
		Avatar:   gravatarURL(email),
	}
	require.NoError(t, db.Create(user).Error)
	token, err := s.generateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

// doJSON issues a JSON request against the app and decodes the response body
// into out (when non-nil), returning the status code.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
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
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	when, err := parseDate("2020-06-15")
	require.NoError(t, err)
	require.NotNil(t, when)
	require.Equal(t, 2020, when.Year())

	when, err = parseDate("")
	require.NoError(t, err)
	require.Nil(t, when)

	_, err = parseDate("June 15")
	require.Error(t, err)
	require.True(t, models.IsCode(err, models.CodeValidation))
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(t, s)

	status := doJSON(t, app, http.MethodGet, "/api/profile/me", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}
