package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawonbufatim/storefront-server/src/middleware"
	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories/mock"
	"github.com/pawonbufatim/storefront-server/src/services"
)

func setupAuthRouter(t *testing.T, admins *mock.AdminRepository) *gin.Engine {
	t.Helper()
	require.NoError(t, middleware.SetJWTSecret("handler-test-secret-with-32-chars!"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(services.NewAdminService(admins))
	router.POST("/admin/login", handler.HandleLogin)
	router.GET("/admin/verify", middleware.AdminAuthMiddleware(), handler.HandleVerify)
	return router
}

func seededAdminRepo(t *testing.T, password string) *mock.AdminRepository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admins := mock.NewAdminRepository()
	admins.GetActiveByUsernameFunc = func(ctx context.Context, username string) (*models.Admin, error) {
		if username != "admin" {
			return nil, nil
		}
		return &models.Admin{
			ID:           1,
			Username:     "admin",
			PasswordHash: string(hash),
			Name:         "Administrator",
			Email:        "admin@pawonbufatim.com",
			IsActive:     true,
		}, nil
	}
	return admins
}

func TestHandleLogin_MissingFields(t *testing.T) {
	router := setupAuthRouter(t, mock.NewAdminRepository())

	for _, payload := range []map[string]string{
		{},
		{"username": "admin"},
		{"password": "admin123"},
	} {
		w := doJSON(t, router, http.MethodPost, "/admin/login", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := parseEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Username and password are required", env.Error)
	}
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	router := setupAuthRouter(t, seededAdminRepo(t, "admin123"))

	w := doJSON(t, router, http.MethodPost, "/admin/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", parseEnvelope(t, w).Error)
}

func TestHandleLogin_UnknownUser(t *testing.T) {
	router := setupAuthRouter(t, seededAdminRepo(t, "admin123"))

	w := doJSON(t, router, http.MethodPost, "/admin/login", map[string]string{
		"username": "nobody",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleLogin_Success_TokenVerifies(t *testing.T) {
	router := setupAuthRouter(t, seededAdminRepo(t, "admin123"))

	w := doJSON(t, router, http.MethodPost, "/admin/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := parseEnvelope(t, w)
	assert.Equal(t, "Login successful", env.Message)

	var data struct {
		Token string `json:"token"`
		Admin struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
			Email    string `json:"email"`
		} `json:"admin"`
	}
	require.NoError(t, jsonUnmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	assert.Equal(t, "admin", data.Admin.Username)
	assert.Equal(t, "Administrator", data.Admin.Name)

	// The issued token passes the auth middleware on the verify endpoint
	verifyW := newAuthorizedGet(router, "/admin/verify", data.Token)
	assert.Equal(t, http.StatusOK, verifyW.Code)
	assert.Contains(t, verifyW.Body.String(), `"username":"admin"`)
	assert.Contains(t, verifyW.Body.String(), `"role":"admin"`)
}

func TestHandleVerify_RequiresToken(t *testing.T) {
	router := setupAuthRouter(t, mock.NewAdminRepository())

	w := doGet(router, "/admin/verify")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
