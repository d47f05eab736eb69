package main

import (
	"context"
	"log"

	"enquirydesk-backend/controller"
	"enquirydesk-backend/models"
	"enquirydesk-backend/utils"
	"enquirydesk-backend/utils/logger"
	"enquirydesk-backend/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title EnquiryDesk Backend API
// @version 1.0
// @description Enquiry management backend: public submissions, admin
// @description lifecycle management, dashboard statistics and email
// @description notifications.
// @description
// @description Authenticate via POST /auth/login and pass the returned
// @description access token as `Bearer <token>` in the Authorization header.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	Init()

	ctx := context.Background()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)

	r := gin.New()
	c := controller.NewController(ctx, config, appLogger)

	// Start server (this is blocking)
	go func() {
		if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	// Start the follow-up sweep worker in the background
	bgWorker, err := worker.NewService(ctx, config, appLogger, c.EnquiryService, c.EmailService, c.JWTManager)
	if err != nil {
		log.Fatalf("Failed to create background worker: %v", err)
	}
	if err := bgWorker.StartInBackground(); err != nil {
		log.Fatalf("Failed to start background worker: %v", err)
	}

	// Keep main goroutine alive
	select {}
}
