package controller

import (
	"context"
	"net/http"

	"enquirydesk-backend/dal"
	"enquirydesk-backend/infrastructure"
	"enquirydesk-backend/middelware"
	"enquirydesk-backend/models"
	"enquirydesk-backend/repository"
	"enquirydesk-backend/services"
	"enquirydesk-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Enquiry   *EnquiryController
	Dashboard *DashboardController
	Auth      *AuthController
	Email     *EmailController

	JWTManager     *middelware.JWTManager
	EnquiryService services.EnquiryServiceInterface
	EmailService   *services.EmailService

	logger logger.Logger
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	if err := infrastructure.EnsureTables(ctx, dbclient, cfg, log); err != nil {
		log.Fatalf("Failed to ensure tables: %v", err)
	}

	enquiryRepo := repository.NewEnquiryRepository(dbclient, cfg, log)
	adminRepo := repository.NewAdminRepository(dbclient, cfg, log)
	jwtManager := middelware.NewJWTManager(cfg, log, adminRepo)

	emailService := services.NewEmailService(cfg, log)
	enquiryService := services.NewEnquiryService(enquiryRepo, emailService, log)
	dashboardService := services.NewDashboardService(enquiryRepo, log)

	return &Controller{
		Enquiry:        NewEnquiryController(ctx, enquiryService, log),
		Dashboard:      NewDashboardController(ctx, dashboardService, log),
		Auth:           NewAuthController(ctx, adminRepo, jwtManager, log),
		Email:          NewEmailController(ctx, emailService, enquiryService, dashboardService, log),
		JWTManager:     jwtManager,
		EnquiryService: enquiryService,
		EmailService:   emailService,
		logger:         log,
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	logging := middelware.NewLoggingMiddleware(c.logger)
	r.Use(logging.Recovery())
	r.Use(middelware.NewCORSMiddleware(config).CORS())
	r.Use(logging.RequestLogger())

	v1 := r.Group(basePath)

	// Health check endpoint (no auth required)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"service": "EnquiryDesk Backend",
		})
	})

	auth := c.JWTManager.AuthMiddleware()

	// Public submission plus the admin-only lifecycle routes
	enquiries := v1.Group("/enquiries")
	enquiries.POST("", c.Enquiry.CreateEnquiry)
	enquiries.GET("", auth, c.Enquiry.ListEnquiries)
	enquiries.GET("/follow-ups", auth, c.Enquiry.GetFollowUps)
	enquiries.GET("/activity", auth, c.Enquiry.GetActivityFeed)
	enquiries.GET("/stats", auth, c.Dashboard.GetStats)
	enquiries.GET("/:id", auth, c.Enquiry.GetEnquiry)
	enquiries.PATCH("/:id/status", auth, c.Enquiry.UpdateStatus)
	enquiries.POST("/:id/notes", auth, c.Enquiry.AddNote)
	enquiries.PATCH("/:id/assign", auth, c.Enquiry.AssignEnquiry)
	enquiries.PATCH("/:id/priority", auth, c.Enquiry.UpdatePriority)
	enquiries.POST("/:id/tags", auth, c.Enquiry.AddTags)
	enquiries.PATCH("/:id/follow-up", auth, c.Enquiry.SetFollowUp)
	enquiries.DELETE("/:id", auth, c.Enquiry.DeleteEnquiry)

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/overview", auth, c.Dashboard.GetOverview)
	dashboard.GET("/analytics", auth, c.Dashboard.GetAnalytics)
	dashboard.GET("/performance", auth, c.Dashboard.GetPerformance)
	dashboard.GET("/export", auth, c.Dashboard.Export)

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", c.Auth.Login)
	authGroup.POST("/refresh", c.Auth.Refresh)
	authGroup.POST("/setup", c.Auth.Setup)
	authGroup.POST("/logout", auth, c.Auth.Logout)
	authGroup.GET("/profile", auth, c.Auth.Profile)

	email := v1.Group("/email", auth)
	email.POST("/test", c.Email.TestEmail)
	email.POST("/send", c.Email.SendEmail)
	email.POST("/bulk", c.Email.BulkEmail)
	email.POST("/weekly-report", c.Email.WeeklyReport)
	email.POST("/follow-up-reminders", c.Email.FollowUpReminders)
	email.POST("/resend-confirmation/:id", c.Email.ResendConfirmation)
	email.POST("/status-notification/:id", c.Email.StatusNotification)
	email.GET("/status", c.Email.EmailStatus)

	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}

	c.logger.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
