package services

import (
	"context"

	"enquirydesk-backend/models"
)

// EnquiryServiceInterface defines the contract for the enquiry lifecycle service
type EnquiryServiceInterface interface {
	CreateEnquiry(ctx context.Context, req *models.CreateEnquiryRequest, meta models.EnquiryMetadata) (*models.Enquiry, error)
	GetEnquiry(ctx context.Context, id string) (*models.Enquiry, error)
	ListEnquiries(ctx context.Context, filter models.EnquiryFilter, opts models.ListOptions) (*models.EnquiryList, error)
	UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest, actor *string) (*models.Enquiry, error)
	AddNote(ctx context.Context, id string, req *models.AddNoteRequest, actor string) (*models.Enquiry, error)
	AssignEnquiry(ctx context.Context, id string, assignedTo *string) (*models.Enquiry, error)
	UpdatePriority(ctx context.Context, id string, priority string) (*models.Enquiry, error)
	AddTags(ctx context.Context, id string, tags []string) (*models.Enquiry, error)
	SetFollowUpDate(ctx context.Context, id string, req *models.SetFollowUpRequest) (*models.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id string) error
	GetFollowUps(ctx context.Context) ([]*models.Enquiry, error)
	GetActivityFeed(ctx context.Context, limit int) ([]models.ActivityEvent, error)
}

// DashboardServiceInterface defines the contract for the statistics aggregator
type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*models.EnquiryStats, error)
	GetOverview(ctx context.Context) (*models.DashboardOverview, error)
	GetAnalytics(ctx context.Context, period string) (*models.Analytics, error)
	GetPerformance(ctx context.Context) (*models.PerformanceMetrics, error)
	GetWeeklyReport(ctx context.Context) (*models.WeeklyReport, error)
	ExportJSON(ctx context.Context) (*models.ExportResult, error)
	ExportCSV(ctx context.Context) (string, error)
}

// EnquiryNotifier receives lifecycle events for email rendering and delivery.
// Implementations must never block a lifecycle operation on delivery failure.
type EnquiryNotifier interface {
	SendNewEnquiryNotification(enquiry *models.Enquiry) error
	SendCustomerConfirmation(enquiry *models.Enquiry) error
	SendStatusUpdateNotification(enquiry *models.Enquiry, oldStatus models.EnquiryStatus) error
}
