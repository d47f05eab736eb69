package services

import (
	"context"
	"sync"

	"enquirydesk-backend/models"

	"github.com/stretchr/testify/mock"
)

// MockEnquiryRepository implements repository.EnquiryRepositoryInterface for testing
type MockEnquiryRepository struct {
	mock.Mock
}

func (m *MockEnquiryRepository) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error) {
	args := m.Called(ctx, enquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryRepository) GetEnquiry(ctx context.Context, id string) (*models.Enquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryRepository) GetAllEnquiries(ctx context.Context) ([]*models.Enquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryRepository) UpdateEnquiry(ctx context.Context, id string, updates map[string]interface{}) (*models.Enquiry, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryRepository) UpdateStatusWithHistory(ctx context.Context, id string, status models.EnquiryStatus, entry models.StatusHistoryEntry) (*models.Enquiry, error) {
	args := m.Called(ctx, id, status, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryRepository) AppendNote(ctx context.Context, id string, note models.Note) (*models.Enquiry, error) {
	args := m.Called(ctx, id, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryRepository) DeleteEnquiry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingNotifier captures notification calls so tests can wait on the
// fire-and-forget goroutines.
type recordingNotifier struct {
	mu            sync.Mutex
	newEnquiries  []string
	confirmations []string
	statusUpdates []string
	done          chan struct{}
}

func newRecordingNotifier(expected int) *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, expected)}
}

func (n *recordingNotifier) SendNewEnquiryNotification(enquiry *models.Enquiry) error {
	n.mu.Lock()
	n.newEnquiries = append(n.newEnquiries, enquiry.ID)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func (n *recordingNotifier) SendCustomerConfirmation(enquiry *models.Enquiry) error {
	n.mu.Lock()
	n.confirmations = append(n.confirmations, enquiry.Email)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func (n *recordingNotifier) SendStatusUpdateNotification(enquiry *models.Enquiry, oldStatus models.EnquiryStatus) error {
	n.mu.Lock()
	n.statusUpdates = append(n.statusUpdates, string(oldStatus)+"->"+string(enquiry.Status))
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}
