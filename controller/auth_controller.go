package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"enquirydesk-backend/middelware"
	"enquirydesk-backend/models"
	"enquirydesk-backend/repository"
	"enquirydesk-backend/utils"
	"enquirydesk-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

type AuthController struct {
	ctx        context.Context
	adminRepo  repository.AdminRepositoryInterface
	jwtManager *middelware.JWTManager
	logger     logger.Logger
}

func NewAuthController(ctx context.Context, adminRepo repository.AdminRepositoryInterface, jwtManager *middelware.JWTManager, log logger.Logger) *AuthController {
	return &AuthController{
		ctx:        ctx,
		adminRepo:  adminRepo,
		jwtManager: jwtManager,
		logger:     log,
	}
}

// Login handles POST /api/v1/auth/login
// @Summary Admin login
// @Description Exchanges credentials for an access token; the refresh token
// @Description is set as an http-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Admin credentials"
// @Success 200 {object} models.APIResponse "Login successful"
// @Failure 401 {object} models.APIResponse "Unauthorized - Invalid credentials"
// @Router /auth/login [post]
func (h *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", "Email and password are required")
		return
	}

	admin, err := h.adminRepo.GetAdminByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		h.respondInvalidCredentials(c, err)
		return
	}

	if !admin.IsActive {
		h.logger.Errorf("Login attempt on deactivated account: %s", admin.ID)
		h.respondInvalidCredentials(c, errors.New("account deactivated"))
		return
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		h.respondInvalidCredentials(c, errors.New("password mismatch"))
		return
	}

	accessToken, err := h.jwtManager.GenerateToken(admin)
	if err != nil {
		h.logger.Error("Token generation failed", err)
		respondError(c, "Token generation failed", err)
		return
	}

	refreshToken, err := h.jwtManager.GenerateRefreshToken(admin)
	if err != nil {
		h.logger.Error("Refresh token generation failed", err)
		respondError(c, "Token generation failed", err)
		return
	}

	if err := h.adminRepo.UpdateLastLogin(c.Request.Context(), admin.ID); err != nil {
		h.logger.Errorf("Failed to record last login for %s: %v", admin.ID, err)
	}

	maxAge := int(h.jwtManager.Config.RefreshExpiresIn.Seconds())
	c.SetCookie(refreshCookieName, refreshToken, maxAge, "/", "", false, true)

	respondOK(c, "Login successful", map[string]interface{}{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   int(h.jwtManager.Config.JWTExpiresIn.Seconds()),
		"admin":        admin,
	})
}

func (h *AuthController) respondInvalidCredentials(c *gin.Context, err error) {
	h.logger.Errorf("Login failed: %v", err)
	c.JSON(http.StatusUnauthorized, models.APIResponse{
		Success: false,
		Code:    http.StatusUnauthorized,
		Message: "Invalid email or password",
		Error: &models.APIError{
			Type:    "AuthenticationError",
			Details: "Invalid email or password",
		},
	})
}

// Refresh handles POST /api/v1/auth/refresh
// @Summary Refresh the access token
// @Description Uses the http-only refresh cookie to mint a new access token
// @Tags Auth
// @Produce json
// @Success 200 {object} models.APIResponse "Token refreshed successfully"
// @Failure 401 {object} models.APIResponse "Unauthorized - Missing or invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthController) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Success: false,
			Code:    http.StatusUnauthorized,
			Message: "Missing refresh token",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: "Refresh token cookie is required",
			},
		})
		return
	}

	claims, err := h.jwtManager.ValidateToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.logger.Errorf("Refresh token validation failed: %v", err)
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Success: false,
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired refresh token",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: err.Error(),
			},
		})
		return
	}

	admin, err := h.adminRepo.GetAdmin(c.Request.Context(), claims.AdminID)
	if err != nil {
		h.logger.Errorf("Failed to load admin %s on refresh: %v", claims.AdminID, err)
		respondError(c, "Failed to refresh token", err)
		return
	}

	accessToken, err := h.jwtManager.GenerateToken(admin)
	if err != nil {
		h.logger.Error("Token generation failed", err)
		respondError(c, "Token generation failed", err)
		return
	}

	respondOK(c, "Token refreshed successfully", map[string]interface{}{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   int(h.jwtManager.Config.JWTExpiresIn.Seconds()),
	})
}

// Logout handles POST /api/v1/auth/logout
// @Summary Admin logout
// @Description Revokes the current token and clears the refresh cookie
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Logout successful"
// @Router /auth/logout [post]
func (h *AuthController) Logout(c *gin.Context) {
	if claims, exists := c.Get("jwt_claims"); exists {
		if jwtClaims, ok := claims.(*models.JWTClaims); ok && jwtClaims.ExpiresAt != nil {
			h.jwtManager.RevokeToken(jwtClaims.ID, jwtClaims.ExpiresAt.Time)
		}
	}

	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)

	respondOK(c, "Logout successful", nil)
}

// Profile handles GET /api/v1/auth/profile
// @Summary Authenticated admin profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Profile retrieved successfully"
// @Failure 404 {object} models.APIResponse "Not Found - Admin does not exist"
// @Router /auth/profile [get]
func (h *AuthController) Profile(c *gin.Context) {
	admin, err := h.adminRepo.GetAdmin(c.Request.Context(), c.GetString("admin_id"))
	if err != nil {
		h.logger.Error("Failed to get admin profile", err)
		respondError(c, "Failed to retrieve profile", err)
		return
	}

	respondOK(c, "Profile retrieved successfully", admin)
}

// Setup handles POST /api/v1/auth/setup
// @Summary Bootstrap the first admin account
// @Description Creates the initial super-admin; rejected once any admin exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.CreateAdminRequest true "Initial admin account"
// @Success 201 {object} models.APIResponse "Admin created successfully"
// @Failure 409 {object} models.APIResponse "Conflict - Admin already exists"
// @Router /auth/setup [post]
func (h *AuthController) Setup(c *gin.Context) {
	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", err)
		respondError(c, "Failed to create admin", err)
		return
	}

	role := models.AdminRole(req.Role)
	if role != models.AdminRoleAdmin && role != models.AdminRoleSuperAdmin {
		role = models.AdminRoleSuperAdmin
	}

	admin := &models.Admin{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
	}

	created, err := h.adminRepo.CreateAdmin(c.Request.Context(), admin)
	if err != nil {
		h.logger.Error("Failed to create admin", err)
		if errors.Is(err, repository.ErrAdminExists) {
			c.JSON(http.StatusConflict, models.APIResponse{
				Success: false,
				Code:    http.StatusConflict,
				Message: "Admin already exists",
				Error: &models.APIError{
					Type:    "ConflictError",
					Details: err.Error(),
				},
			})
			return
		}
		respondError(c, "Failed to create admin", err)
		return
	}

	respondCreated(c, "Admin created successfully", created)
}
