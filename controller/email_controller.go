package controller

import (
	"context"

	"enquirydesk-backend/models"
	"enquirydesk-backend/services"
	"enquirydesk-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type EmailController struct {
	ctx              context.Context
	emailService     *services.EmailService
	enquiryService   services.EnquiryServiceInterface
	dashboardService services.DashboardServiceInterface
	logger           logger.Logger
}

func NewEmailController(ctx context.Context, emailService *services.EmailService, enquiryService services.EnquiryServiceInterface, dashboardService services.DashboardServiceInterface, log logger.Logger) *EmailController {
	return &EmailController{
		ctx:              ctx,
		emailService:     emailService,
		enquiryService:   enquiryService,
		dashboardService: dashboardService,
		logger:           log,
	}
}

// TestEmailRequest is the payload for the configuration test endpoint.
type TestEmailRequest struct {
	TestEmail string `json:"test_email" binding:"required,email"`
}

// SendEmailRequest is a single outbound message.
type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// BulkEmailRequest is the payload for a batched send.
type BulkEmailRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1,dive,email"`
	Subject    string   `json:"subject" binding:"required"`
	Message    string   `json:"message" binding:"required"`
}

// TestEmail handles POST /api/v1/email/test
// @Summary Send a test email
// @Description Verifies the SMTP configuration by mailing the given address
// @Tags Email
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body TestEmailRequest true "Destination address"
// @Success 200 {object} models.APIResponse "Test email sent"
// @Router /email/test [post]
func (h *EmailController) TestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := h.emailService.Send(req.TestEmail, "Test Email", "This is a test email from the enquiry desk."); err != nil {
		h.logger.Error("Test email failed", err)
		respondError(c, "Failed to send test email", err)
		return
	}

	respondOK(c, "Test email sent", map[string]interface{}{
		"sent_to": req.TestEmail,
		"skipped": !h.emailService.IsConfigured(),
	})
}

// SendEmail handles POST /api/v1/email/send
// @Summary Send a single email
// @Tags Email
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SendEmailRequest true "Message payload"
// @Success 200 {object} models.APIResponse "Email sent"
// @Router /email/send [post]
func (h *EmailController) SendEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := h.emailService.Send(req.To, req.Subject, req.Message); err != nil {
		h.logger.Error("Email send failed", err)
		respondError(c, "Failed to send email", err)
		return
	}

	respondOK(c, "Email sent", map[string]interface{}{
		"sent_to": req.To,
		"skipped": !h.emailService.IsConfigured(),
	})
}

// BulkEmail handles POST /api/v1/email/bulk
// @Summary Send an email to many recipients
// @Description Delivers in batches of 50 with a delay between batches
// @Tags Email
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BulkEmailRequest true "Bulk message payload"
// @Success 200 {object} models.APIResponse "Bulk send finished"
// @Router /email/bulk [post]
func (h *EmailController) BulkEmail(c *gin.Context) {
	var req BulkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	result := h.emailService.SendBulkEmail(req.Recipients, req.Subject, req.Message)

	respondOK(c, "Bulk send finished", result)
}

// WeeklyReport handles POST /api/v1/email/weekly-report
// @Summary Generate and send the weekly summary
// @Description Compares the last seven days to the seven before and mails the admin inbox
// @Tags Email
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Weekly report sent"
// @Router /email/weekly-report [post]
func (h *EmailController) WeeklyReport(c *gin.Context) {
	report, err := h.dashboardService.GetWeeklyReport(c.Request.Context())
	if err != nil {
		h.logger.Error("Weekly report build failed", err)
		respondError(c, "Failed to build weekly report", err)
		return
	}

	if err := h.emailService.SendWeeklyReport(report); err != nil {
		h.logger.Error("Weekly report send failed", err)
		respondError(c, "Failed to send weekly report", err)
		return
	}

	respondOK(c, "Weekly report sent", map[string]interface{}{
		"report":  report,
		"skipped": !h.emailService.IsConfigured(),
	})
}

// FollowUpReminders handles POST /api/v1/email/follow-up-reminders
// @Summary Send the follow-up reminder digest now
// @Description Runs the same sweep as the background worker on demand
// @Tags Email
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Follow-up reminders sent"
// @Router /email/follow-up-reminders [post]
func (h *EmailController) FollowUpReminders(c *gin.Context) {
	due, err := h.enquiryService.GetFollowUps(c.Request.Context())
	if err != nil {
		h.logger.Error("Follow-up sweep failed", err)
		respondError(c, "Failed to collect follow-ups", err)
		return
	}

	if err := h.emailService.SendFollowUpReminder(due); err != nil {
		h.logger.Error("Follow-up reminder send failed", err)
		respondError(c, "Failed to send follow-up reminders", err)
		return
	}

	respondOK(c, "Follow-up reminders sent", map[string]interface{}{
		"count":   len(due),
		"skipped": !h.emailService.IsConfigured(),
	})
}

// ResendConfirmation handles POST /api/v1/email/resend-confirmation/:id
// @Summary Resend the submission confirmation to the customer
// @Tags Email
// @Security BearerAuth
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {object} models.APIResponse "Confirmation email resent"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid enquiry ID"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /email/resend-confirmation/{id} [post]
func (h *EmailController) ResendConfirmation(c *gin.Context) {
	enquiry, err := h.enquiryService.GetEnquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to load enquiry for confirmation resend", err)
		respondError(c, "Failed to resend confirmation", err)
		return
	}

	if err := h.emailService.SendCustomerConfirmation(enquiry); err != nil {
		h.logger.Error("Confirmation resend failed", err)
		respondError(c, "Failed to resend confirmation", err)
		return
	}

	respondOK(c, "Confirmation email resent", map[string]interface{}{
		"sent_to": enquiry.Email,
		"skipped": !h.emailService.IsConfigured(),
	})
}

// StatusNotification handles POST /api/v1/email/status-notification/:id
// @Summary Send the current-status notification to the customer
// @Tags Email
// @Security BearerAuth
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {object} models.APIResponse "Status notification sent"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid enquiry ID"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /email/status-notification/{id} [post]
func (h *EmailController) StatusNotification(c *gin.Context) {
	enquiry, err := h.enquiryService.GetEnquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to load enquiry for status notification", err)
		respondError(c, "Failed to send status notification", err)
		return
	}

	// The previous status comes from the audit trail; an unchanged enquiry
	// falls back to its creation default.
	oldStatus := enquiry.Status
	if n := len(enquiry.StatusHistory); n >= 2 {
		oldStatus = enquiry.StatusHistory[n-2].Status
	} else if n == 1 {
		oldStatus = models.EnquiryStatusNew
	}

	if err := h.emailService.SendStatusUpdateNotification(enquiry, oldStatus); err != nil {
		h.logger.Error("Status notification send failed", err)
		respondError(c, "Failed to send status notification", err)
		return
	}

	respondOK(c, "Status notification sent", map[string]interface{}{
		"sent_to": enquiry.Email,
		"status":  enquiry.Status,
		"skipped": !h.emailService.IsConfigured(),
	})
}

// EmailStatus handles GET /api/v1/email/status
// @Summary Mailer configuration state
// @Tags Email
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Email status retrieved"
// @Router /email/status [get]
func (h *EmailController) EmailStatus(c *gin.Context) {
	respondOK(c, "Email status retrieved", h.emailService.Status())
}
