package middelware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"enquirydesk-backend/models"
	"enquirydesk-backend/repository"
	"enquirydesk-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager handles JWT token operations
type JWTManager struct {
	Config            *models.Config
	Logger            logger.Logger
	AdminRepo         repository.AdminRepositoryInterface
	BlacklistedTokens map[string]time.Time // Token revocation blacklist (for immediate invalidation)
	TokenMutex        sync.RWMutex
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger, adminRepo repository.AdminRepositoryInterface) *JWTManager {
	return &JWTManager{
		Config:            cfg,
		Logger:            log,
		AdminRepo:         adminRepo,
		BlacklistedTokens: make(map[string]time.Time),
	}
}

// GenerateToken generates a short-lived access token for an admin
func (j *JWTManager) GenerateToken(admin *models.Admin) (string, error) {
	return j.generate(admin, j.Config.JWTExpiresIn)
}

// GenerateRefreshToken generates the long-lived refresh token stored in the
// http-only cookie.
func (j *JWTManager) GenerateRefreshToken(admin *models.Admin) (string, error) {
	return j.generate(admin, j.Config.RefreshExpiresIn)
}

func (j *JWTManager) generate(admin *models.Admin, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := models.JWTClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   admin.ID,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Generated JWT token for admin: %s", admin.ID)
	return tokenString, nil
}

// ValidateToken validates a JWT token and cross-verifies the admin account
// against the database so a disabled admin loses access immediately.
func (j *JWTManager) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks: only HS256 is accepted.
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}
		return []byte(j.Config.JWTSecret), nil
	})
	if err != nil {
		j.Logger.Errorf("Failed to parse JWT token: %v", err)
		return nil, err
	}

	if !token.Valid {
		j.Logger.Error("Invalid JWT token")
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		j.Logger.Error("Failed to extract JWT claims")
		return nil, fmt.Errorf("invalid claims")
	}

	j.TokenMutex.RLock()
	if expiry, exists := j.BlacklistedTokens[claims.ID]; exists && expiry.After(time.Now()) {
		j.TokenMutex.RUnlock()
		j.Logger.Error("Token is blacklisted")
		return nil, fmt.Errorf("token has been revoked")
	}
	j.TokenMutex.RUnlock()

	if j.AdminRepo != nil {
		admin, err := j.AdminRepo.GetAdmin(ctx, claims.AdminID)
		if err != nil {
			j.Logger.Errorf("Failed to verify admin %s in database: %v", claims.AdminID, err)
			return nil, fmt.Errorf("admin verification failed")
		}
		if !admin.IsActive {
			j.Logger.Errorf("Admin account %s is deactivated", claims.AdminID)
			return nil, fmt.Errorf("admin account is deactivated")
		}
	}

	j.Logger.Debugf("Successfully validated JWT token for admin: %s", claims.AdminID)
	return claims, nil
}

// RevokeToken blacklists a token until its natural expiry (logout).
func (j *JWTManager) RevokeToken(tokenID string, expiry time.Time) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	j.BlacklistedTokens[tokenID] = expiry
	j.Logger.Debugf("Revoked token: %s", tokenID)
}

// CleanupExpiredTokens removes expired tokens from the blacklist. Called by
// the background worker on a schedule.
func (j *JWTManager) CleanupExpiredTokens() {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	now := time.Now()
	for tokenID, expiry := range j.BlacklistedTokens {
		if expiry.Before(now) {
			delete(j.BlacklistedTokens, tokenID)
		}
	}
	j.Logger.Debugf("Cleaned up expired blacklisted tokens")
}

// AuthMiddleware validates the Bearer token from the Authorization header and
// places the admin identity in the request context.
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			j.Logger.Error("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success: false,
				Code:    http.StatusUnauthorized,
				Message: "Missing Authorization header",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: "Authorization header is required",
				},
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			j.Logger.Error("Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success: false,
				Code:    http.StatusUnauthorized,
				Message: "Invalid Authorization header format",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: "Authorization header must be in format: Bearer <token>",
				},
			})
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		claims, err := j.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			j.Logger.Errorf("Token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success: false,
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired token",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: err.Error(),
				},
			})
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)
		c.Set("admin_name", claims.Name)
		c.Set("admin_role", claims.Role)
		c.Set("jwt_claims", claims)

		j.Logger.Debugf("Admin authenticated: %s", claims.AdminID)
		c.Next()
	}
}

// RequireRole restricts a route to admins holding the given role.
func (j *JWTManager) RequireRole(requiredRole models.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("jwt_claims")
		if !exists {
			j.Logger.Error("JWT claims not found in context")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success: false,
				Code:    http.StatusUnauthorized,
				Message: "Authentication required",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: "Admin not authenticated",
				},
			})
			c.Abort()
			return
		}

		jwtClaims := claims.(*models.JWTClaims)
		if jwtClaims.Role != requiredRole {
			j.Logger.Errorf("Admin %s does not have required role: %s", jwtClaims.AdminID, requiredRole)
			c.JSON(http.StatusForbidden, models.APIResponse{
				Success: false,
				Code:    http.StatusForbidden,
				Message: "Insufficient permissions",
				Error: &models.APIError{
					Type:    "AuthorizationError",
					Details: fmt.Sprintf("Required role: %s", requiredRole),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
