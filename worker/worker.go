package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"enquirydesk-backend/middelware"
	"enquirydesk-backend/models"
	"enquirydesk-backend/services"
	"enquirydesk-backend/utils/logger"

	"github.com/robfig/cron"
)

// tokenCleanupSchedule prunes the JWT blacklist hourly.
const tokenCleanupSchedule = "0 0 * * * *"

// Worker runs the scheduled background jobs: the follow-up sweep that mails
// admins about due enquiries, and JWT blacklist cleanup.
type Worker struct {
	config         *models.Config
	logger         logger.Logger
	enquiryService services.EnquiryServiceInterface
	emailService   *services.EmailService
	jwtManager     *middelware.JWTManager

	cronJob   *cron.Cron
	isRunning bool
	mu        sync.Mutex
	stopOnce  sync.Once
	stopChan  chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewWorker creates the background worker
func NewWorker(ctx context.Context, cfg *models.Config, log logger.Logger, enquiryService services.EnquiryServiceInterface, emailService *services.EmailService, jwtManager *middelware.JWTManager) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	// Cron schedules use second precision (6 fields).
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.FollowUpSchedule); err != nil {
		return nil, fmt.Errorf("invalid follow-up schedule '%s': %w", cfg.FollowUpSchedule, err)
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Worker{
		config:         cfg,
		logger:         log,
		enquiryService: enquiryService,
		emailService:   emailService,
		jwtManager:     jwtManager,
		cronJob:        cron.New(),
		stopChan:       make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

// Start registers the cron jobs and starts the scheduler.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("worker is already running")
	}

	w.logger.Infof("Starting background worker with follow-up schedule: %s", w.config.FollowUpSchedule)

	if err := w.cronJob.AddFunc(w.config.FollowUpSchedule, w.runFollowUpSweep); err != nil {
		return fmt.Errorf("failed to add follow-up job: %w", err)
	}
	if err := w.cronJob.AddFunc(tokenCleanupSchedule, w.runTokenCleanup); err != nil {
		return fmt.Errorf("failed to add token cleanup job: %w", err)
	}

	w.cronJob.Start()
	w.isRunning = true

	w.logger.Info("Background worker started successfully")
	return nil
}

// runFollowUpSweep collects enquiries due for follow-up and mails the
// reminder. Failures are logged and retried on the next tick.
func (w *Worker) runFollowUpSweep() {
	select {
	case <-w.ctx.Done():
		w.logger.Info("Worker is stopping, skipping follow-up sweep")
		return
	default:
	}

	ctx, cancel := context.WithTimeout(w.ctx, 2*time.Minute)
	defer cancel()

	w.logger.Debug("Follow-up sweep triggered")

	due, err := w.enquiryService.GetFollowUps(ctx)
	if err != nil {
		w.logger.Errorf("Follow-up sweep failed: %v", err)
		return
	}

	if len(due) == 0 {
		w.logger.Debug("No enquiries due for follow-up")
		return
	}

	w.logger.Infof("Follow-up sweep found %d due enquiries", len(due))

	if err := w.emailService.SendFollowUpReminder(due); err != nil {
		w.logger.Errorf("Failed to send follow-up reminder: %v", err)
	}
}

func (w *Worker) runTokenCleanup() {
	select {
	case <-w.ctx.Done():
		return
	default:
	}

	w.jwtManager.CleanupExpiredTokens()
}

// IsRunning reports whether the scheduler is active.
func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Stop stops the scheduler. Safe to call more than once.
func (w *Worker) Stop() error {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if !w.isRunning {
			return
		}

		w.logger.Info("Stopping background worker")

		w.cancel()
		w.cronJob.Stop()
		w.isRunning = false
		close(w.stopChan)

		w.logger.Info("Background worker stopped")
	})

	return nil
}
