package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawonbufatim/storefront-server/src/middleware"
	"github.com/pawonbufatim/storefront-server/src/services"
)

// AuthHandler handles admin login and token verification
type AuthHandler struct {
	adminService *services.AdminService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(adminService *services.AdminService) *AuthHandler {
	return &AuthHandler{adminService: adminService}
}

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// adminPublic is the admin shape exposed to clients
type adminPublic struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// HandleLogin authenticates an admin and issues a 24h bearer token
func (h *AuthHandler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, err := h.adminService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := middleware.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	respondMessage(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"admin": adminPublic{
			ID:       admin.ID,
			Username: admin.Username,
			Name:     admin.Name,
			Email:    admin.Email,
		},
	})
}

// HandleVerify confirms the bearer token the auth middleware already
// validated and echoes the session identity
func (h *AuthHandler) HandleVerify(c *gin.Context) {
	adminID, _ := c.Get("admin_id")
	username, _ := c.Get("username")
	role, _ := c.Get("role")

	respondData(c, http.StatusOK, gin.H{
		"id":       adminID,
		"username": username,
		"role":     role,
	})
}
