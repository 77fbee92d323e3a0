package server

import (
	"net/http"
	"strings"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(t, s)

	t.Run("success returns a token", func(t *testing.T) {
		var resp TokenResponse
		status := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
			"name":     "Jane Doe",
			"email":    "jane@example.com",
			"password": "secret123",
		}, &resp)
		require.Equal(t, http.StatusOK, status)
		require.NotEmpty(t, resp.Token)

		var user models.User
		require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
		assert.True(t, strings.HasPrefix(user.Avatar, "https://www.gravatar.com/avatar/"))
		assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		var resp models.ErrorResponse
		status := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
			"name":     "Jane Again",
			"email":    "jane@example.com",
			"password": "secret123",
		}, &resp)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "User already exists", resp.Error)
	})

	t.Run("invalid email", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
			"name":     "Jane",
			"email":    "not-an-email",
			"password": "secret123",
		}, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("short password", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPost, "/api/users", "", map[string]string{
			"name":     "Jane",
			"email":    "jane2@example.com",
			"password": "abc",
		}, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestLogin(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(t, s)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Name: "Sam", Email: "sam@example.com", Password: string(hashed),
	}).Error)

	t.Run("success", func(t *testing.T) {
		var resp TokenResponse
		status := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "sam@example.com",
			"password": "secret123",
		}, &resp)
		require.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password and unknown email answer identically", func(t *testing.T) {
		var wrongPw models.ErrorResponse
		status := doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "sam@example.com",
			"password": "wrong-password",
		}, &wrongPw)
		require.Equal(t, http.StatusBadRequest, status)

		var unknown models.ErrorResponse
		status = doJSON(t, app, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "secret123",
		}, &unknown)
		require.Equal(t, http.StatusBadRequest, status)

		assert.Equal(t, wrongPw.Error, unknown.Error)
		assert.Equal(t, "Invalid credentials", wrongPw.Error)
	})
}

func TestMe(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(t, s)

	user, token := createTestUser(t, s, db, "Jane", "jane@example.com")

	var resp map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/auth", token, nil, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.Name, resp["name"])
	assert.Equal(t, user.Email, resp["email"])
	_, leaked := resp["password"]
	assert.False(t, leaked, "password must never serialize")
}
