package repository

import (
	"context"
	"errors"
	"time"

	"enquirydesk-backend/dal"
	"enquirydesk-backend/models"
	"enquirydesk-backend/utils"
	"enquirydesk-backend/utils/logger"
)

// ErrAdminExists is returned when creating an admin with a taken email.
var ErrAdminExists = errors.New("admin with this email already exists")

type AdminRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *AdminRepository {
	return &AdminRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *AdminRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + "_admins"
}

func (r *AdminRepository) CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	existing, err := r.GetAdminByEmail(ctx, admin.Email)
	if err == nil && existing != nil {
		return nil, ErrAdminExists
	}

	now := time.Now()
	admin.ID = utils.GenerateUUID()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	admin.IsActive = true

	if err := r.db.PutItem(ctx, r.tableName(), admin); err != nil {
		r.logger.Errorf("Failed to create admin: %v", err)
		return nil, err
	}

	r.logger.Infof("Admin created successfully: %s", admin.ID)
	return admin, nil
}

func (r *AdminRepository) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	if !utils.IsValidID(id) {
		return nil, models.ErrInvalidID
	}

	admin := models.Admin{}
	if err := r.db.GetItem(ctx, r.tableName(), "id", id, &admin); err != nil {
		r.logger.Errorf("Failed to get admin %s: %v", id, err)
		return nil, err
	}

	if admin.ID == "" {
		return nil, models.ErrNotFound
	}

	return &admin, nil
}

func (r *AdminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admins []*models.Admin
	if err := r.db.QueryByIndex(ctx, r.tableName(), "email-index", "email", email, &admins); err != nil {
		r.logger.Errorf("Failed to query admin by email: %v", err)
		return nil, err
	}

	if len(admins) == 0 {
		return nil, models.ErrNotFound
	}

	return admins[0], nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"last_login_at": now,
		"updated_at":    now,
	}
	return r.db.UpdateItem(ctx, r.tableName(), "id", id, updates)
}
