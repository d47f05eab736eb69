package services

import (
	"context"
	"testing"
	"time"

	"enquirydesk-backend/models"
	"enquirydesk-backend/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type QueryEngineTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockEnquiryRepository
	service  *EnquiryService
}

func (suite *QueryEngineTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = &MockEnquiryRepository{}
	suite.service = NewEnquiryService(suite.mockRepo, newRecordingNotifier(0), logger.NewSilentLogger())
}

func TestQueryEngineTestSuite(t *testing.T) {
	suite.Run(t, new(QueryEngineTestSuite))
}

func (suite *QueryEngineTestSuite) seed(enquiries []*models.Enquiry) {
	suite.mockRepo.On("GetAllEnquiries", suite.ctx).Return(enquiries, nil)
}

func sampleEnquiries() []*models.Enquiry {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	assigned := "11111111-1111-4111-8111-111111111111"
	return []*models.Enquiry{
		{ID: "a", Name: "Alice Smith", Email: "alice@example.com", Subject: "Website build",
			Service: models.ServiceSoftwareDevelopment, Status: models.EnquiryStatusNew,
			Priority: models.PriorityHigh, CreatedAt: base},
		{ID: "b", Name: "Bob Jones", Email: "bob@example.com", Subject: "SEO audit",
			Service: models.ServiceDigitalMarketing, Status: models.EnquiryStatusInProgress,
			Priority: models.PriorityLow, AssignedTo: &assigned, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "c", Name: "Carol White", Email: "carol@example.com", Subject: "Video intro",
			Service: models.ServiceVideoEditing, Status: models.EnquiryStatusCompleted,
			Priority: models.PriorityMedium, CreatedAt: base.AddDate(0, 0, 2)},
	}
}

func (suite *QueryEngineTestSuite) TestDefaultSortIsNewestFirst() {
	suite.seed(sampleEnquiries())

	list, err := suite.service.ListEnquiries(suite.ctx, models.EnquiryFilter{}, models.ListOptions{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, list.Pagination.Total)
	assert.Equal(suite.T(), "c", list.Enquiries[0].ID)
	assert.Equal(suite.T(), "a", list.Enquiries[2].ID)
}

func (suite *QueryEngineTestSuite) TestStatusFilter() {
	suite.seed(sampleEnquiries())

	list, err := suite.service.ListEnquiries(suite.ctx,
		models.EnquiryFilter{Status: models.EnquiryStatusInProgress}, models.ListOptions{})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 1)
	assert.Equal(suite.T(), "b", list.Enquiries[0].ID)
}

func (suite *QueryEngineTestSuite) TestSearchSpansNameEmailSubject() {
	suite.seed(sampleEnquiries())

	list, err := suite.service.ListEnquiries(suite.ctx,
		models.EnquiryFilter{Search: "seo"}, models.ListOptions{})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 1)
	assert.Equal(suite.T(), "b", list.Enquiries[0].ID)

	suite.SetupTest()
	suite.seed(sampleEnquiries())
	list, err = suite.service.ListEnquiries(suite.ctx,
		models.EnquiryFilter{Search: "CAROL"}, models.ListOptions{})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 1)
	assert.Equal(suite.T(), "c", list.Enquiries[0].ID)
}

func (suite *QueryEngineTestSuite) TestDateRangeIsInclusive() {
	suite.seed(sampleEnquiries())

	from := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)
	list, err := suite.service.ListEnquiries(suite.ctx,
		models.EnquiryFilter{DateFrom: &from, DateTo: &to}, models.ListOptions{})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 2)
}

func (suite *QueryEngineTestSuite) TestPaginationMath() {
	suite.seed(sampleEnquiries())

	list, err := suite.service.ListEnquiries(suite.ctx, models.EnquiryFilter{},
		models.ListOptions{Page: 2, Limit: 2})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 1)
	assert.Equal(suite.T(), 3, list.Pagination.Total)
	assert.Equal(suite.T(), 2, list.Pagination.TotalPages)
	assert.False(suite.T(), list.Pagination.HasNext)
	assert.True(suite.T(), list.Pagination.HasPrev)
}

func (suite *QueryEngineTestSuite) TestHasPrevTracksPageOnEmptyResult() {
	suite.seed([]*models.Enquiry{})

	list, err := suite.service.ListEnquiries(suite.ctx, models.EnquiryFilter{},
		models.ListOptions{Page: 2, Limit: 10})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 0)
	assert.Equal(suite.T(), 0, list.Pagination.Total)
	// hasPrev depends only on the page number, never on the result size.
	assert.True(suite.T(), list.Pagination.HasPrev)
	assert.False(suite.T(), list.Pagination.HasNext)
}

func (suite *QueryEngineTestSuite) TestPageBeyondRangeReturnsEmptyPage() {
	suite.seed(sampleEnquiries())

	list, err := suite.service.ListEnquiries(suite.ctx, models.EnquiryFilter{},
		models.ListOptions{Page: 5, Limit: 10})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 0)
	assert.Equal(suite.T(), 3, list.Pagination.Total)
}

func (suite *QueryEngineTestSuite) TestRejectsOutOfRangeOptions() {
	cases := []models.ListOptions{
		{Page: -1},
		{Limit: 101},
		{Limit: -5},
		{SortBy: "metadata"},
		{SortOrder: "sideways"},
	}

	for _, opts := range cases {
		_, err := suite.service.ListEnquiries(suite.ctx, models.EnquiryFilter{}, opts)
		assert.Error(suite.T(), err)
		_, ok := models.AsValidationErrors(err)
		assert.True(suite.T(), ok)
	}

	suite.mockRepo.AssertNotCalled(suite.T(), "GetAllEnquiries")
}

func (suite *QueryEngineTestSuite) TestRejectsInvertedDateRange() {
	from := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.ListEnquiries(suite.ctx,
		models.EnquiryFilter{DateFrom: &from, DateTo: &to}, models.ListOptions{})
	assert.Error(suite.T(), err)
}

func (suite *QueryEngineTestSuite) TestSortByNameAscending() {
	suite.seed(sampleEnquiries())

	list, err := suite.service.ListEnquiries(suite.ctx, models.EnquiryFilter{},
		models.ListOptions{SortBy: "name", SortOrder: "asc"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Alice Smith", list.Enquiries[0].Name)
	assert.Equal(suite.T(), "Carol White", list.Enquiries[2].Name)
}

func (suite *QueryEngineTestSuite) TestAssignedToFilter() {
	suite.seed(sampleEnquiries())

	list, err := suite.service.ListEnquiries(suite.ctx,
		models.EnquiryFilter{AssignedTo: "11111111-1111-4111-8111-111111111111"}, models.ListOptions{})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), list.Enquiries, 1)
	assert.Equal(suite.T(), "b", list.Enquiries[0].ID)
}
