package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"enquirydesk-backend/models"
	"enquirydesk-backend/repository"
	"enquirydesk-backend/utils"
	"enquirydesk-backend/utils/logger"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[+]?[\d\s\-()]{10,15}$`)

// EnquiryService is the lifecycle manager: it owns validation, status
// transitions with their audit trail, notes, assignment, tags and follow-ups.
// Notification dispatch is fire-and-forget; its outcome never reaches the
// caller.
type EnquiryService struct {
	repo     repository.EnquiryRepositoryInterface
	notifier EnquiryNotifier
	logger   logger.Logger
	validate *validator.Validate
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(repo repository.EnquiryRepositoryInterface, notifier EnquiryNotifier, log logger.Logger) *EnquiryService {
	return &EnquiryService{
		repo:     repo,
		notifier: notifier,
		logger:   log,
		validate: validator.New(),
	}
}

func (s *EnquiryService) CreateEnquiry(ctx context.Context, req *models.CreateEnquiryRequest, meta models.EnquiryMetadata) (*models.Enquiry, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	if meta.Source == "" {
		meta.Source = "Website"
	}

	enquiry := &models.Enquiry{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Service:       models.ServiceType(req.Service),
		Subject:       strings.TrimSpace(req.Subject),
		Message:       strings.TrimSpace(req.Message),
		Status:        models.EnquiryStatusNew,
		Priority:      models.PriorityMedium,
		StatusHistory: []models.StatusHistoryEntry{},
		Notes:         []models.Note{},
		Metadata:      meta,
	}

	if enquiry.Subject == "" {
		enquiry.Subject = fmt.Sprintf("Enquiry for %s Services", enquiry.Service)
	}

	created, err := s.repo.CreateEnquiry(ctx, enquiry)
	if err != nil {
		return nil, err
	}

	// Notifications must never fail or delay the submission.
	go func(e models.Enquiry) {
		if err := s.notifier.SendNewEnquiryNotification(&e); err != nil {
			s.logger.Errorf("Admin notification failed for enquiry %s: %v", e.ID, err)
		}
		if err := s.notifier.SendCustomerConfirmation(&e); err != nil {
			s.logger.Errorf("Customer confirmation failed for enquiry %s: %v", e.ID, err)
		}
	}(*created)

	return created, nil
}

func (s *EnquiryService) GetEnquiry(ctx context.Context, id string) (*models.Enquiry, error) {
	return s.repo.GetEnquiry(ctx, id)
}

// UpdateStatus sets the new status and appends a complete history entry
// (reason included) in one persist. A transition to the current status is
// still recorded: every status call leaves an audit entry.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest, actor *string) (*models.Enquiry, error) {
	var verrs models.ValidationErrors
	status := models.EnquiryStatus(req.Status)
	if !isValidStatus(status) {
		verrs = verrs.Add("status", "Invalid status value")
	}
	if req.Reason != nil && utf8.RuneCountInString(strings.TrimSpace(*req.Reason)) > 500 {
		verrs = verrs.Add("reason", "Reason cannot exceed 500 characters")
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	existing, err := s.repo.GetEnquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := existing.Status

	entry := models.StatusHistoryEntry{
		Status:    status,
		ChangedBy: actor,
		ChangedAt: time.Now(),
	}
	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if reason != "" {
			entry.Reason = &reason
		}
	}

	updated, err := s.repo.UpdateStatusWithHistory(ctx, id, status, entry)
	if err != nil {
		return nil, err
	}

	go func(e models.Enquiry, old models.EnquiryStatus) {
		if err := s.notifier.SendStatusUpdateNotification(&e, old); err != nil {
			s.logger.Errorf("Status update email failed for enquiry %s: %v", e.ID, err)
		}
	}(*updated, oldStatus)

	return updated, nil
}

// AddNote appends a note. Notes are deliberately not deduplicated: repeating
// the same call appends a new entry each time.
func (s *EnquiryService) AddNote(ctx context.Context, id string, req *models.AddNoteRequest, actor string) (*models.Enquiry, error) {
	text := strings.TrimSpace(req.Note)
	if n := utf8.RuneCountInString(text); n < 1 || n > 1000 {
		return nil, models.ValidationErrors{}.Add("note", "Note must be between 1 and 1000 characters")
	}

	if actor == "" {
		actor = "Admin"
	}

	note := models.Note{
		Note:      text,
		AddedBy:   actor,
		AddedAt:   time.Now(),
		IsPrivate: req.IsPrivate,
	}

	return s.repo.AppendNote(ctx, id, note)
}

// AssignEnquiry sets or clears assignedTo. No history entry is written.
func (s *EnquiryService) AssignEnquiry(ctx context.Context, id string, assignedTo *string) (*models.Enquiry, error) {
	if assignedTo != nil && !utils.IsValidID(*assignedTo) {
		return nil, models.ValidationErrors{}.Add("assigned_to", "Invalid admin ID")
	}

	updates := map[string]interface{}{
		"assigned_to": assignedTo,
	}
	return s.repo.UpdateEnquiry(ctx, id, updates)
}

func (s *EnquiryService) UpdatePriority(ctx context.Context, id string, priority string) (*models.Enquiry, error) {
	p := models.EnquiryPriority(priority)
	if !isValidPriority(p) {
		return nil, models.ValidationErrors{}.Add("priority", "Invalid priority value")
	}

	updates := map[string]interface{}{
		"priority": p,
	}
	return s.repo.UpdateEnquiry(ctx, id, updates)
}

// AddTags merges new tags into the existing set. Duplicates are dropped and
// the merged set may never exceed 10 tags.
func (s *EnquiryService) AddTags(ctx context.Context, id string, tags []string) (*models.Enquiry, error) {
	var verrs models.ValidationErrors
	if len(tags) < 1 || len(tags) > 10 {
		verrs = verrs.Add("tags", "Tags must be an array with 1-10 items")
	}

	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if n := utf8.RuneCountInString(t); n < 1 || n > 50 {
			verrs = verrs.Add("tags", "Each tag must be between 1 and 50 characters")
			break
		}
		cleaned = append(cleaned, t)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	existing, err := s.repo.GetEnquiry(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := existing.Tags
	seen := make(map[string]bool, len(merged))
	for _, t := range merged {
		seen[t] = true
	}
	for _, t := range cleaned {
		if !seen[t] {
			merged = append(merged, t)
			seen[t] = true
		}
	}

	if len(merged) > 10 {
		return nil, models.ValidationErrors{}.Add("tags", "An enquiry cannot hold more than 10 tags")
	}

	updates := map[string]interface{}{
		"tags": merged,
	}
	return s.repo.UpdateEnquiry(ctx, id, updates)
}

func (s *EnquiryService) SetFollowUpDate(ctx context.Context, id string, req *models.SetFollowUpRequest) (*models.Enquiry, error) {
	if req.FollowUpDate.IsZero() {
		return nil, models.ValidationErrors{}.Add("follow_up_date", "Please provide a valid follow-up date")
	}

	updates := map[string]interface{}{
		"follow_up_date": req.FollowUpDate,
	}
	return s.repo.UpdateEnquiry(ctx, id, updates)
}

func (s *EnquiryService) DeleteEnquiry(ctx context.Context, id string) error {
	return s.repo.DeleteEnquiry(ctx, id)
}

// GetFollowUps returns open enquiries whose follow-up date falls on or before
// the end of today, soonest first.
func (s *EnquiryService) GetFollowUps(ctx context.Context) ([]*models.Enquiry, error) {
	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	due := make([]*models.Enquiry, 0)
	for _, e := range all {
		if e.FollowUpDate == nil || e.FollowUpDate.After(endOfToday) {
			continue
		}
		if e.Status != models.EnquiryStatusNew && e.Status != models.EnquiryStatusInProgress {
			continue
		}
		due = append(due, e)
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].FollowUpDate.Before(*due[j].FollowUpDate)
	})

	return due, nil
}

// GetActivityFeed merges status changes, public notes and creations across
// the most recently updated enquiries into a newest-first event list.
// Private notes never appear in the feed.
func (s *EnquiryService) GetActivityFeed(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}

	events := make([]models.ActivityEvent, 0)
	for _, e := range all {
		for _, h := range e.StatusHistory {
			actor := "System"
			if h.ChangedBy != nil {
				actor = *h.ChangedBy
			}
			data := map[string]interface{}{
				"new_status": h.Status,
			}
			if h.Reason != nil {
				data["reason"] = *h.Reason
			}
			events = append(events, models.ActivityEvent{
				Type:        "status_change",
				EnquiryID:   e.ID,
				EnquiryName: e.Name,
				Timestamp:   h.ChangedAt,
				Actor:       actor,
				Data:        data,
			})
		}

		for _, n := range e.Notes {
			if n.IsPrivate {
				continue
			}
			text := n.Note
			// Truncate on a rune boundary so multibyte notes stay valid UTF-8.
			if utf8.RuneCountInString(text) > 100 {
				runes := []rune(text)
				text = string(runes[:100]) + "..."
			}
			events = append(events, models.ActivityEvent{
				Type:        "note_added",
				EnquiryID:   e.ID,
				EnquiryName: e.Name,
				Timestamp:   n.AddedAt,
				Actor:       n.AddedBy,
				Data: map[string]interface{}{
					"note": text,
				},
			})
		}

		events = append(events, models.ActivityEvent{
			Type:        "enquiry_created",
			EnquiryID:   e.ID,
			EnquiryName: e.Name,
			Timestamp:   e.CreatedAt,
			Actor:       "Customer",
			Data: map[string]interface{}{
				"service": e.Service,
				"email":   e.Email,
			},
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func (s *EnquiryService) validateCreateRequest(req *models.CreateEnquiryRequest) error {
	var verrs models.ValidationErrors

	// Length windows count characters, not bytes, so multibyte names and
	// messages are measured the way the form presents them.
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		verrs = verrs.Add("name", "Name must be between 2 and 100 characters")
	}

	email := strings.TrimSpace(req.Email)
	if s.validate.Var(email, "required,email") != nil {
		verrs = verrs.Add("email", "Please provide a valid email address")
	}

	phone := strings.TrimSpace(req.Phone)
	if !phonePattern.MatchString(phone) {
		verrs = verrs.Add("phone", "Please provide a valid phone number")
	}

	if !isValidService(models.ServiceType(req.Service)) {
		verrs = verrs.Add("service", "Please select a valid service")
	}

	message := strings.TrimSpace(req.Message)
	if n := utf8.RuneCountInString(message); n < 10 || n > 1000 {
		verrs = verrs.Add("message", "Message must be between 10 and 1000 characters")
	}

	if subject := strings.TrimSpace(req.Subject); utf8.RuneCountInString(subject) > 200 {
		verrs = verrs.Add("subject", "Subject cannot exceed 200 characters")
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

func isValidStatus(status models.EnquiryStatus) bool {
	for _, s := range models.ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func isValidPriority(priority models.EnquiryPriority) bool {
	for _, p := range models.ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func isValidService(service models.ServiceType) bool {
	for _, s := range models.ValidServices {
		if s == service {
			return true
		}
	}
	return false
}
