package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"clinic-admin-server/internal/config"
	"clinic-admin-server/internal/middleware"
	"clinic-admin-server/internal/models"
	"clinic-admin-server/internal/utils"
)

// AuthHandler authenticates the back-office logins. Credentials are seeded
// from configuration at startup; there is no registration flow.
type AuthHandler struct {
	Cfg   *config.Config
	users map[string]*models.User // keyed by email
}

// NewAuthHandler seeds the fixed admin and staff users.
func NewAuthHandler(cfg *config.Config) (*AuthHandler, error) {
	h := &AuthHandler{Cfg: cfg, users: make(map[string]*models.User)}

	seed := []struct {
		email    string
		password string
		name     string
		role     models.Role
	}{
		{cfg.AdminEmail, cfg.AdminPassword, "Administrator", models.RoleAdmin},
		{cfg.StaffEmail, cfg.StaffPassword, "Reception", models.RoleStaff},
	}
	for _, sd := range seed {
		u := &models.User{
			BaseModel: models.BaseModel{ID: models.NewID(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
			Email:     sd.email,
			Name:      sd.name,
			Role:      sd.role,
		}
		if err := u.SetPassword(sd.password); err != nil {
			return nil, err
		}
		h.users[u.Email] = u
	}
	return h, nil
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks the seeded credentials and issues access/refresh tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, ok := h.users[req.Email]
	if !ok || !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user.Sanitize(),
	})
}

// RefreshTokenRequest represents the request body for refreshing tokens.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	user := h.findByID(claims.UserID)
	if user == nil {
		utils.Unauthorized(c, "Unknown user")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	utils.Success(c, "Token refreshed", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user := h.findByID(userID)
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

func (h *AuthHandler) findByID(id string) *models.User {
	for _, u := range h.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
