package repository

import (
	"context"
	"time"

	"enquirydesk-backend/dal"
	"enquirydesk-backend/models"
	"enquirydesk-backend/utils"
	"enquirydesk-backend/utils/logger"
)

type EnquiryRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewEnquiryRepository creates a new enquiry repository
func NewEnquiryRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *EnquiryRepository {
	return &EnquiryRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *EnquiryRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + "_enquiries"
}

func (r *EnquiryRepository) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error) {
	now := time.Now()
	enquiry.ID = utils.GenerateUUID()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now

	if enquiry.StatusHistory == nil {
		enquiry.StatusHistory = []models.StatusHistoryEntry{}
	}
	if enquiry.Notes == nil {
		enquiry.Notes = []models.Note{}
	}

	if err := r.db.PutItem(ctx, r.tableName(), enquiry); err != nil {
		r.logger.Errorf("Failed to create enquiry: %v", err)
		return nil, err
	}

	r.logger.Infof("Enquiry created successfully: %s", enquiry.ID)
	return enquiry, nil
}

func (r *EnquiryRepository) GetEnquiry(ctx context.Context, id string) (*models.Enquiry, error) {
	if !utils.IsValidID(id) {
		return nil, models.ErrInvalidID
	}

	enquiry := models.Enquiry{}
	if err := r.db.GetItem(ctx, r.tableName(), "id", id, &enquiry); err != nil {
		r.logger.Errorf("Failed to get enquiry %s: %v", id, err)
		return nil, err
	}

	if enquiry.ID == "" {
		return nil, models.ErrNotFound
	}

	return &enquiry, nil
}

func (r *EnquiryRepository) GetAllEnquiries(ctx context.Context) ([]*models.Enquiry, error) {
	var enquiries []*models.Enquiry
	if err := r.db.ScanTable(ctx, r.tableName(), &enquiries); err != nil {
		r.logger.Errorf("Failed to scan enquiries: %v", err)
		return nil, err
	}
	return enquiries, nil
}

// UpdateEnquiry applies a partial update and returns the fresh record.
// updated_at is bumped on every call.
func (r *EnquiryRepository) UpdateEnquiry(ctx context.Context, id string, updates map[string]interface{}) (*models.Enquiry, error) {
	if _, err := r.GetEnquiry(ctx, id); err != nil {
		return nil, err
	}

	updates["updated_at"] = time.Now()

	if err := r.db.UpdateItem(ctx, r.tableName(), "id", id, updates); err != nil {
		r.logger.Errorf("Failed to update enquiry %s: %v", id, err)
		return nil, err
	}

	return r.GetEnquiry(ctx, id)
}

// UpdateStatusWithHistory sets the status and appends the audit entry in a
// single write so readers never observe one without the other.
func (r *EnquiryRepository) UpdateStatusWithHistory(ctx context.Context, id string, status models.EnquiryStatus, entry models.StatusHistoryEntry) (*models.Enquiry, error) {
	if _, err := r.GetEnquiry(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	appends := map[string]interface{}{
		"status_history": entry,
	}

	if err := r.db.UpdateWithListAppend(ctx, r.tableName(), "id", id, updates, appends); err != nil {
		r.logger.Errorf("Failed to update status for enquiry %s: %v", id, err)
		return nil, err
	}

	r.logger.Infof("Enquiry %s status updated to %s", id, status)
	return r.GetEnquiry(ctx, id)
}

func (r *EnquiryRepository) AppendNote(ctx context.Context, id string, note models.Note) (*models.Enquiry, error) {
	if _, err := r.GetEnquiry(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	appends := map[string]interface{}{
		"notes": note,
	}

	if err := r.db.UpdateWithListAppend(ctx, r.tableName(), "id", id, updates, appends); err != nil {
		r.logger.Errorf("Failed to append note to enquiry %s: %v", id, err)
		return nil, err
	}

	return r.GetEnquiry(ctx, id)
}

func (r *EnquiryRepository) DeleteEnquiry(ctx context.Context, id string) error {
	if _, err := r.GetEnquiry(ctx, id); err != nil {
		return err
	}

	if err := r.db.DeleteItem(ctx, r.tableName(), "id", id); err != nil {
		r.logger.Errorf("Failed to delete enquiry %s: %v", id, err)
		return err
	}

	r.logger.Infof("Enquiry deleted successfully: %s", id)
	return nil
}
