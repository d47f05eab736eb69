package middelware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"enquirydesk-backend/models"
	"enquirydesk-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAdminRepository implements repository.AdminRepositoryInterface for testing
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	config     *models.Config
	jwtManager *JWTManager
	admin      *models.Admin
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.config = &models.Config{
		AppName:          "EnquiryDesk",
		JWTSecret:        "test-secret-key-for-testing",
		JWTExpiresIn:     24 * time.Hour,
		RefreshExpiresIn: 7 * 24 * time.Hour,
	}

	suite.admin = &models.Admin{
		ID:       "11111111-1111-4111-8111-111111111111",
		Name:     "Jane Admin",
		Email:    "jane@example.com",
		Role:     models.AdminRoleAdmin,
		IsActive: true,
	}

	// No repository: pure token validation.
	suite.jwtManager = NewJWTManager(suite.config, logger.NewSilentLogger(), nil)
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (suite *AuthMiddlewareTestSuite) TestTokenRoundTrip() {
	token, err := suite.jwtManager.GenerateToken(suite.admin)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)

	claims, err := suite.jwtManager.ValidateToken(context.Background(), token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.admin.ID, claims.AdminID)
	assert.Equal(suite.T(), suite.admin.Email, claims.Email)
	assert.Equal(suite.T(), models.AdminRoleAdmin, claims.Role)
}

func (suite *AuthMiddlewareTestSuite) TestExpiredTokenRejected() {
	suite.config.JWTExpiresIn = -time.Hour

	token, err := suite.jwtManager.GenerateToken(suite.admin)
	assert.NoError(suite.T(), err)

	_, err = suite.jwtManager.ValidateToken(context.Background(), token)
	assert.Error(suite.T(), err)
}

func (suite *AuthMiddlewareTestSuite) TestTamperedSecretRejected() {
	token, err := suite.jwtManager.GenerateToken(suite.admin)
	assert.NoError(suite.T(), err)

	other := NewJWTManager(&models.Config{
		AppName:      "EnquiryDesk",
		JWTSecret:    "a-different-secret",
		JWTExpiresIn: time.Hour,
	}, logger.NewSilentLogger(), nil)

	_, err = other.ValidateToken(context.Background(), token)
	assert.Error(suite.T(), err)
}

func (suite *AuthMiddlewareTestSuite) TestRevokedTokenRejected() {
	token, err := suite.jwtManager.GenerateToken(suite.admin)
	assert.NoError(suite.T(), err)

	claims, err := suite.jwtManager.ValidateToken(context.Background(), token)
	assert.NoError(suite.T(), err)

	suite.jwtManager.RevokeToken(claims.ID, claims.ExpiresAt.Time)

	_, err = suite.jwtManager.ValidateToken(context.Background(), token)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "revoked")
}

func (suite *AuthMiddlewareTestSuite) TestCleanupRemovesExpiredEntries() {
	suite.jwtManager.RevokeToken("stale", time.Now().Add(-time.Minute))
	suite.jwtManager.RevokeToken("fresh", time.Now().Add(time.Hour))

	suite.jwtManager.CleanupExpiredTokens()

	suite.jwtManager.TokenMutex.RLock()
	defer suite.jwtManager.TokenMutex.RUnlock()
	_, staleExists := suite.jwtManager.BlacklistedTokens["stale"]
	_, freshExists := suite.jwtManager.BlacklistedTokens["fresh"]
	assert.False(suite.T(), staleExists)
	assert.True(suite.T(), freshExists)
}

func (suite *AuthMiddlewareTestSuite) TestDeactivatedAdminRejected() {
	mockRepo := &MockAdminRepository{}
	inactive := *suite.admin
	inactive.IsActive = false
	mockRepo.On("GetAdmin", mock.Anything, suite.admin.ID).Return(&inactive, nil)

	manager := NewJWTManager(suite.config, logger.NewSilentLogger(), mockRepo)
	token, err := manager.GenerateToken(suite.admin)
	assert.NoError(suite.T(), err)

	_, err = manager.ValidateToken(context.Background(), token)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "deactivated")
}

func (suite *AuthMiddlewareTestSuite) performRequest(authHeader string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/protected", suite.jwtManager.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetString("admin_id")})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) TestMiddlewareMissingHeader() {
	w := suite.performRequest("")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMiddlewareMalformedHeader() {
	w := suite.performRequest("Token abc")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestMiddlewareValidToken() {
	token, err := suite.jwtManager.GenerateToken(suite.admin)
	assert.NoError(suite.T(), err)

	w := suite.performRequest("Bearer " + token)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), suite.admin.ID)
}

func (suite *AuthMiddlewareTestSuite) TestRequireRoleBlocksOtherRoles() {
	router := gin.New()
	router.GET("/super",
		suite.jwtManager.AuthMiddleware(),
		suite.jwtManager.RequireRole(models.AdminRoleSuperAdmin),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := suite.jwtManager.GenerateToken(suite.admin) // plain admin
	assert.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/super", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}
