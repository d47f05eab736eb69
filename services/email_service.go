package services

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"enquirydesk-backend/models"
	"enquirydesk-backend/utils/logger"
)

// BulkEmailResult summarizes one bulk-send run.
type BulkEmailResult struct {
	Total   int      `json:"total"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
	Skipped bool     `json:"skipped,omitempty"`
}

// EmailService renders and delivers enquiry-related mail over SMTP. When
// email is disabled in config every send is logged and skipped so the rest
// of the system behaves identically in development.
type EmailService struct {
	config *models.Config
	logger logger.Logger

	// sendFunc is swapped out by tests to capture outgoing mail.
	sendFunc func(to, subject, body string) error

	batchSize  int
	batchDelay time.Duration
}

// NewEmailService creates a new email service
func NewEmailService(cfg *models.Config, log logger.Logger) *EmailService {
	s := &EmailService{
		config:     cfg,
		logger:     log,
		batchSize:  50,
		batchDelay: time.Second,
	}
	s.sendFunc = s.sendSMTP
	return s
}

// IsConfigured reports whether outgoing mail is enabled and credentialed.
func (s *EmailService) IsConfigured() bool {
	return s.config.EmailEnabled && s.config.SMTPUser != "" && s.config.SMTPPassword != ""
}

// Send delivers a single plain-text message. Disabled configurations log
// and return nil so callers never fail on a missing mail setup.
func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		s.logger.Infof("Email disabled, skipping send to %s: %s", to, subject)
		return nil
	}
	return s.sendFunc(to, subject, body)
}

func (s *EmailService) sendSMTP(to, subject, body string) error {
	addr := s.config.SMTPHost + ":" + s.config.SMTPPort
	auth := smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, s.config.SMTPHost)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.config.EmailFromName, s.config.SMTPUser),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.config.SMTPUser, []string{to}, []byte(msg)); err != nil {
		s.logger.Errorf("Email sending failed to %s: %v", to, err)
		return err
	}

	s.logger.Infof("Email sent successfully to %s: %s", to, subject)
	return nil
}

// SendNewEnquiryNotification mails the admin inbox about a fresh submission.
func (s *EmailService) SendNewEnquiryNotification(enquiry *models.Enquiry) error {
	subject := fmt.Sprintf("New Enquiry: %s - %s", enquiry.Service, enquiry.Name)
	body := fmt.Sprintf(
		"A new enquiry has been submitted.\n\n"+
			"Name: %s\nEmail: %s\nPhone: %s\nService: %s\nSubject: %s\n\nMessage:\n%s\n\nSubmitted at: %s\n",
		enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Service, enquiry.Subject,
		enquiry.Message, enquiry.CreatedAt.Format(time.RFC3339))
	return s.Send(s.config.AdminEmail, subject, body)
}

// SendCustomerConfirmation acknowledges the submission to the customer.
func (s *EmailService) SendCustomerConfirmation(enquiry *models.Enquiry) error {
	subject := "Thank you for contacting " + s.config.EmailFromName + "!"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"We have received your enquiry about %s and will get back to you soon.\n\n"+
			"Reference: %s\n\nBest regards,\n%s\n",
		enquiry.Name, enquiry.Service, enquiry.ID, s.config.EmailFromName)
	return s.Send(enquiry.Email, subject, body)
}

// SendStatusUpdateNotification tells the customer their enquiry moved.
func (s *EmailService) SendStatusUpdateNotification(enquiry *models.Enquiry, oldStatus models.EnquiryStatus) error {
	subject := fmt.Sprintf("Your enquiry is now %s", enquiry.Status)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"The status of your enquiry (%s) changed from %s to %s.\n\n"+
			"Best regards,\n%s\n",
		enquiry.Name, enquiry.Subject, oldStatus, enquiry.Status, s.config.EmailFromName)
	return s.Send(enquiry.Email, subject, body)
}

// SendFollowUpReminder mails the admin inbox the list of enquiries due for
// follow-up. Used by the background sweep.
func (s *EmailService) SendFollowUpReminder(enquiries []*models.Enquiry) error {
	if len(enquiries) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d enquiries are due for follow-up:\n\n", len(enquiries))
	for _, e := range enquiries {
		due := ""
		if e.FollowUpDate != nil {
			due = e.FollowUpDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "- %s (%s, %s) due %s\n", e.Name, e.Service, e.Status, due)
	}

	subject := fmt.Sprintf("Follow-up reminder: %d enquiries due", len(enquiries))
	return s.Send(s.config.AdminEmail, subject, b.String())
}

// SendWeeklyReport mails the admin inbox the week-over-week summary.
func (s *EmailService) SendWeeklyReport(report *models.WeeklyReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Weekly summary %s to %s\n\n", report.WeekStart, report.WeekEnd)
	fmt.Fprintf(&b, "Enquiries: %d (%+d%% vs previous week)\n", report.TotalEnquiries, report.Growth)
	fmt.Fprintf(&b, "Completed: %d\n", report.Completed)
	if len(report.ServiceBreakdown) > 0 {
		b.WriteString("\nBy service:\n")
		for _, item := range report.ServiceBreakdown {
			fmt.Fprintf(&b, "- %s: %d\n", item.Key, item.Count)
		}
	}

	subject := fmt.Sprintf("Weekly Report: %s - %s", report.WeekStart, report.WeekEnd)
	return s.Send(s.config.AdminEmail, subject, b.String())
}

// SendBulkEmail delivers the same message to many recipients in fixed-size
// batches with a delay between batches to stay under provider rate limits.
func (s *EmailService) SendBulkEmail(recipients []string, subject, body string) BulkEmailResult {
	result := BulkEmailResult{Total: len(recipients)}

	if !s.IsConfigured() {
		s.logger.Info("Email disabled, skipping bulk send")
		result.Skipped = true
		return result
	}

	for start := 0; start < len(recipients); start += s.batchSize {
		end := start + s.batchSize
		if end > len(recipients) {
			end = len(recipients)
		}

		for _, to := range recipients[start:end] {
			if err := s.sendFunc(to, subject, body); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", to, err))
				continue
			}
			result.Sent++
		}

		if end < len(recipients) {
			time.Sleep(s.batchDelay)
		}
	}

	s.logger.Infof("Bulk email finished: %d sent, %d failed of %d", result.Sent, result.Failed, result.Total)
	return result
}

// Status reports the mailer configuration for the admin UI.
func (s *EmailService) Status() map[string]interface{} {
	return map[string]interface{}{
		"enabled":    s.config.EmailEnabled,
		"configured": s.IsConfigured(),
		"smtp_host":  s.config.SMTPHost,
		"from_name":  s.config.EmailFromName,
	}
}
