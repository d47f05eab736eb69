package repository

import (
	"context"

	"enquirydesk-backend/models"
)

// EnquiryRepositoryInterface defines the contract for enquiry persistence
type EnquiryRepositoryInterface interface {
	CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error)
	GetEnquiry(ctx context.Context, id string) (*models.Enquiry, error)
	GetAllEnquiries(ctx context.Context) ([]*models.Enquiry, error)
	UpdateEnquiry(ctx context.Context, id string, updates map[string]interface{}) (*models.Enquiry, error)
	UpdateStatusWithHistory(ctx context.Context, id string, status models.EnquiryStatus, entry models.StatusHistoryEntry) (*models.Enquiry, error)
	AppendNote(ctx context.Context, id string, note models.Note) (*models.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id string) error
}

// AdminRepositoryInterface defines the contract for admin account persistence
type AdminRepositoryInterface interface {
	CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, id string) error
}
