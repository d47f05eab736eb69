package services

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"enquirydesk-backend/models"
	"enquirydesk-backend/utils"
	"enquirydesk-backend/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EnquiryServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockEnquiryRepository
	notifier *recordingNotifier
	service  *EnquiryService
}

func (suite *EnquiryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = &MockEnquiryRepository{}
	suite.notifier = newRecordingNotifier(8)
	suite.service = NewEnquiryService(suite.mockRepo, suite.notifier, logger.NewSilentLogger())
}

func TestEnquiryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EnquiryServiceTestSuite))
}

func validCreateRequest() *models.CreateEnquiryRequest {
	return &models.CreateEnquiryRequest{
		Name:    "John Doe",
		Email:   "John@Example.com",
		Phone:   "+919876543210",
		Service: "Software Development",
		Message: "I need help building a web application",
	}
}

func (suite *EnquiryServiceTestSuite) TestCreateEnquiryDefaults() {
	suite.mockRepo.On("CreateEnquiry", suite.ctx, mock.AnythingOfType("*models.Enquiry")).
		Return(&models.Enquiry{ID: utils.GenerateUUID()}, nil).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(*models.Enquiry)
			assert.Equal(suite.T(), models.EnquiryStatusNew, e.Status)
			assert.Equal(suite.T(), models.PriorityMedium, e.Priority)
			assert.Equal(suite.T(), "john@example.com", e.Email)
			assert.Equal(suite.T(), "Enquiry for Software Development Services", e.Subject)
		})

	created, err := suite.service.CreateEnquiry(suite.ctx, validCreateRequest(), models.EnquiryMetadata{})
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), created)

	// both fire-and-forget notifications run
	<-suite.notifier.done
	<-suite.notifier.done
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EnquiryServiceTestSuite) TestCreateEnquiryKeepsCustomSubject() {
	req := validCreateRequest()
	req.Subject = "Custom subject"

	suite.mockRepo.On("CreateEnquiry", suite.ctx, mock.AnythingOfType("*models.Enquiry")).
		Return(&models.Enquiry{ID: utils.GenerateUUID()}, nil).
		Run(func(args mock.Arguments) {
			e := args.Get(1).(*models.Enquiry)
			assert.Equal(suite.T(), "Custom subject", e.Subject)
		})

	_, err := suite.service.CreateEnquiry(suite.ctx, req, models.EnquiryMetadata{})
	assert.NoError(suite.T(), err)
	<-suite.notifier.done
	<-suite.notifier.done
}

func (suite *EnquiryServiceTestSuite) TestCreateEnquiryValidation() {
	cases := []struct {
		name   string
		mutate func(*models.CreateEnquiryRequest)
		field  string
	}{
		{"short name", func(r *models.CreateEnquiryRequest) { r.Name = "J" }, "name"},
		{"bad email", func(r *models.CreateEnquiryRequest) { r.Email = "not-an-email" }, "email"},
		{"short phone", func(r *models.CreateEnquiryRequest) { r.Phone = "12345" }, "phone"},
		{"unknown service", func(r *models.CreateEnquiryRequest) { r.Service = "Gardening" }, "service"},
		{"short message", func(r *models.CreateEnquiryRequest) { r.Message = "too short" }, "message"},
	}

	for _, tc := range cases {
		req := validCreateRequest()
		tc.mutate(req)

		_, err := suite.service.CreateEnquiry(suite.ctx, req, models.EnquiryMetadata{})
		assert.Error(suite.T(), err, tc.name)

		verrs, ok := models.AsValidationErrors(err)
		assert.True(suite.T(), ok, tc.name)
		assert.Equal(suite.T(), tc.field, verrs[0].Field, tc.name)
	}

	suite.mockRepo.AssertNotCalled(suite.T(), "CreateEnquiry")
}

func (suite *EnquiryServiceTestSuite) TestCreateEnquiryCountsCharactersNotBytes() {
	// 100 two-byte characters: over 100 bytes, exactly at the character cap.
	req := validCreateRequest()
	req.Name = strings.Repeat("é", 100)

	suite.mockRepo.On("CreateEnquiry", suite.ctx, mock.AnythingOfType("*models.Enquiry")).
		Return(&models.Enquiry{ID: utils.GenerateUUID()}, nil)

	_, err := suite.service.CreateEnquiry(suite.ctx, req, models.EnquiryMetadata{})
	assert.NoError(suite.T(), err)
	<-suite.notifier.done
	<-suite.notifier.done

	req = validCreateRequest()
	req.Name = strings.Repeat("é", 101)
	_, err = suite.service.CreateEnquiry(suite.ctx, req, models.EnquiryMetadata{})
	assert.Error(suite.T(), err)
}

func (suite *EnquiryServiceTestSuite) TestAddNoteCountsCharactersNotBytes() {
	id := utils.GenerateUUID()

	suite.mockRepo.On("AppendNote", suite.ctx, id, mock.AnythingOfType("models.Note")).
		Return(&models.Enquiry{ID: id}, nil)

	_, err := suite.service.AddNote(suite.ctx, id, &models.AddNoteRequest{Note: strings.Repeat("ü", 1000)}, "Jane")
	assert.NoError(suite.T(), err)

	_, err = suite.service.AddNote(suite.ctx, id, &models.AddNoteRequest{Note: strings.Repeat("ü", 1001)}, "Jane")
	assert.Error(suite.T(), err)
}

func (suite *EnquiryServiceTestSuite) TestUpdateStatusAppendsHistoryEntry() {
	id := utils.GenerateUUID()
	actor := "Jane Admin"
	reason := "Work started"

	suite.mockRepo.On("GetEnquiry", suite.ctx, id).
		Return(&models.Enquiry{ID: id, Status: models.EnquiryStatusNew}, nil)
	suite.mockRepo.On("UpdateStatusWithHistory", suite.ctx, id, models.EnquiryStatusInProgress, mock.AnythingOfType("models.StatusHistoryEntry")).
		Return(&models.Enquiry{ID: id, Status: models.EnquiryStatusInProgress}, nil).
		Run(func(args mock.Arguments) {
			entry := args.Get(3).(models.StatusHistoryEntry)
			assert.Equal(suite.T(), models.EnquiryStatusInProgress, entry.Status)
			assert.Equal(suite.T(), actor, *entry.ChangedBy)
			assert.Equal(suite.T(), reason, *entry.Reason)
		})

	updated, err := suite.service.UpdateStatus(suite.ctx, id, &models.UpdateStatusRequest{
		Status: "In Progress",
		Reason: &reason,
	}, &actor)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.EnquiryStatusInProgress, updated.Status)

	<-suite.notifier.done
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EnquiryServiceTestSuite) TestUpdateStatusSameStatusStillRecorded() {
	id := utils.GenerateUUID()

	suite.mockRepo.On("GetEnquiry", suite.ctx, id).
		Return(&models.Enquiry{ID: id, Status: models.EnquiryStatusNew}, nil)
	suite.mockRepo.On("UpdateStatusWithHistory", suite.ctx, id, models.EnquiryStatusNew, mock.AnythingOfType("models.StatusHistoryEntry")).
		Return(&models.Enquiry{ID: id, Status: models.EnquiryStatusNew}, nil)

	_, err := suite.service.UpdateStatus(suite.ctx, id, &models.UpdateStatusRequest{Status: "New"}, nil)
	assert.NoError(suite.T(), err)

	<-suite.notifier.done
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EnquiryServiceTestSuite) TestUpdateStatusRejectsUnknownStatus() {
	_, err := suite.service.UpdateStatus(suite.ctx, utils.GenerateUUID(), &models.UpdateStatusRequest{Status: "Archived"}, nil)
	assert.Error(suite.T(), err)

	_, ok := models.AsValidationErrors(err)
	assert.True(suite.T(), ok)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateStatusWithHistory")
}

func (suite *EnquiryServiceTestSuite) TestAddNoteDefaultsActor() {
	id := utils.GenerateUUID()

	suite.mockRepo.On("AppendNote", suite.ctx, id, mock.AnythingOfType("models.Note")).
		Return(&models.Enquiry{ID: id}, nil).
		Run(func(args mock.Arguments) {
			note := args.Get(2).(models.Note)
			assert.Equal(suite.T(), "Admin", note.AddedBy)
			assert.False(suite.T(), note.IsPrivate)
		})

	_, err := suite.service.AddNote(suite.ctx, id, &models.AddNoteRequest{Note: "Customer called back"}, "")
	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EnquiryServiceTestSuite) TestAddNoteRejectsEmptyNote() {
	_, err := suite.service.AddNote(suite.ctx, utils.GenerateUUID(), &models.AddNoteRequest{Note: "   "}, "Jane")
	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendNote")
}

func (suite *EnquiryServiceTestSuite) TestAddTagsDeduplicates() {
	id := utils.GenerateUUID()

	suite.mockRepo.On("GetEnquiry", suite.ctx, id).
		Return(&models.Enquiry{ID: id, Tags: []string{"vip", "urgent"}}, nil)
	suite.mockRepo.On("UpdateEnquiry", suite.ctx, id, mock.Anything).
		Return(&models.Enquiry{ID: id}, nil).
		Run(func(args mock.Arguments) {
			updates := args.Get(2).(map[string]interface{})
			assert.Equal(suite.T(), []string{"vip", "urgent", "callback"}, updates["tags"])
		})

	_, err := suite.service.AddTags(suite.ctx, id, []string{"vip", "callback"})
	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *EnquiryServiceTestSuite) TestAddTagsRejectsOversizedMerge() {
	id := utils.GenerateUUID()
	existing := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}

	suite.mockRepo.On("GetEnquiry", suite.ctx, id).
		Return(&models.Enquiry{ID: id, Tags: existing}, nil)

	_, err := suite.service.AddTags(suite.ctx, id, []string{"j", "k"})
	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEnquiry")
}

func (suite *EnquiryServiceTestSuite) TestGetFollowUpsFiltersAndSorts() {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	tomorrow := now.AddDate(0, 0, 1)

	all := []*models.Enquiry{
		{ID: "due-yesterday", Status: models.EnquiryStatusNew, FollowUpDate: &yesterday},
		{ID: "due-last-week", Status: models.EnquiryStatusInProgress, FollowUpDate: &lastWeek},
		{ID: "not-due", Status: models.EnquiryStatusNew, FollowUpDate: &tomorrow},
		{ID: "completed", Status: models.EnquiryStatusCompleted, FollowUpDate: &yesterday},
		{ID: "no-date", Status: models.EnquiryStatusNew},
	}
	suite.mockRepo.On("GetAllEnquiries", suite.ctx).Return(all, nil)

	due, err := suite.service.GetFollowUps(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), due, 2)
	assert.Equal(suite.T(), "due-last-week", due[0].ID)
	assert.Equal(suite.T(), "due-yesterday", due[1].ID)
}

func (suite *EnquiryServiceTestSuite) TestActivityFeedExcludesPrivateNotes() {
	now := time.Now()
	all := []*models.Enquiry{
		{
			ID:        "e1",
			Name:      "John Doe",
			CreatedAt: now.Add(-2 * time.Hour),
			UpdatedAt: now,
			Notes: []models.Note{
				{Note: "public note", AddedBy: "Jane", AddedAt: now.Add(-time.Hour)},
				{Note: "private note", AddedBy: "Jane", AddedAt: now.Add(-30 * time.Minute), IsPrivate: true},
			},
		},
	}
	suite.mockRepo.On("GetAllEnquiries", suite.ctx).Return(all, nil)

	events, err := suite.service.GetActivityFeed(suite.ctx, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), events, 2)
	for _, ev := range events {
		if ev.Type == "note_added" {
			assert.Equal(suite.T(), "public note", ev.Data["note"])
		}
	}
}

func (suite *EnquiryServiceTestSuite) TestActivityFeedTruncatesLongNotes() {
	long := ""
	for i := 0; i < 150; i++ {
		long += "x"
	}
	now := time.Now()
	all := []*models.Enquiry{
		{
			ID:        "e1",
			Name:      "John Doe",
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now,
			Notes:     []models.Note{{Note: long, AddedBy: "Jane", AddedAt: now}},
		},
	}
	suite.mockRepo.On("GetAllEnquiries", suite.ctx).Return(all, nil)

	events, err := suite.service.GetActivityFeed(suite.ctx, 10)
	assert.NoError(suite.T(), err)

	found := false
	for _, ev := range events {
		if ev.Type == "note_added" {
			found = true
			assert.Len(suite.T(), ev.Data["note"], 103) // 100 chars + "..."
		}
	}
	assert.True(suite.T(), found)
}

func (suite *EnquiryServiceTestSuite) TestActivityFeedTruncationKeepsValidUTF8() {
	long := strings.Repeat("日", 150)
	now := time.Now()
	all := []*models.Enquiry{
		{
			ID:        "e1",
			Name:      "John Doe",
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now,
			Notes:     []models.Note{{Note: long, AddedBy: "Jane", AddedAt: now}},
		},
	}
	suite.mockRepo.On("GetAllEnquiries", suite.ctx).Return(all, nil)

	events, err := suite.service.GetActivityFeed(suite.ctx, 10)
	assert.NoError(suite.T(), err)

	for _, ev := range events {
		if ev.Type == "note_added" {
			text := ev.Data["note"].(string)
			assert.True(suite.T(), utf8.ValidString(text))
			assert.Equal(suite.T(), 103, utf8.RuneCountInString(text)) // 100 chars + "..."
			assert.True(suite.T(), strings.HasSuffix(text, "..."))
		}
	}
}

func (suite *EnquiryServiceTestSuite) TestAssignEnquiryRejectsBadAdminID() {
	bad := "not-a-uuid"
	_, err := suite.service.AssignEnquiry(suite.ctx, utils.GenerateUUID(), &bad)
	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEnquiry")
}

func (suite *EnquiryServiceTestSuite) TestUpdatePriorityRejectsUnknownValue() {
	_, err := suite.service.UpdatePriority(suite.ctx, utils.GenerateUUID(), "Critical")
	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEnquiry")
}
