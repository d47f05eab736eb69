package worker

import (
	"context"
	"fmt"

	"enquirydesk-backend/middelware"
	"enquirydesk-backend/models"
	"enquirydesk-backend/services"
	"enquirydesk-backend/utils/logger"
)

// Service wraps the background worker for easy integration
type Service struct {
	worker *Worker
	logger logger.Logger
}

// NewService creates a new worker service
func NewService(ctx context.Context, cfg *models.Config, log logger.Logger, enquiryService services.EnquiryServiceInterface, emailService *services.EmailService, jwtManager *middelware.JWTManager) (*Service, error) {
	worker, err := NewWorker(ctx, cfg, log, enquiryService, emailService, jwtManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create background worker: %w", err)
	}

	return &Service{
		worker: worker,
		logger: log,
	}, nil
}

// StartInBackground starts the worker in the background
func (s *Service) StartInBackground() error {
	s.logger.Info("Starting background worker service")

	go func() {
		if err := s.worker.Start(); err != nil {
			s.logger.Errorf("Background worker failed to start: %v", err)
		}
	}()

	return nil
}

// Stop stops the worker service
func (s *Service) Stop() error {
	return s.worker.Stop()
}

// GetHealthStatus returns a health status for monitoring
func (s *Service) GetHealthStatus() map[string]interface{} {
	return map[string]interface{}{
		"worker_running":     s.worker.IsRunning(),
		"follow_up_schedule": s.worker.config.FollowUpSchedule,
	}
}
